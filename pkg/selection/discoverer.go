package selection

import (
	"sort"

	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// Discoverer grows a maximal rectangular patch around a chosen center for
// one (source, target) pair. It holds only the graph, oracle, chooser and
// coverage matrix; each call builds its patches afresh.
//
// Grounded on the original's NodeSelectionCalculator, generalized from its
// BFS-neighbor frontier to a full [0,N) index sweep per spec: candidates
// are considered in plain node order rather than by graph adjacency, and a
// coverage matrix prunes candidates that would add nothing new.
type Discoverer struct {
	g       *graph.Graph
	oracle  pathfinding.Oracle
	chooser CenterChooser
	cov     *CoverageMatrix
}

// NewDiscoverer builds a discoverer over g, answering distance queries via
// oracle and choosing centers via chooser. cov is consulted (read-only, by
// Discover) to skip already-covered candidates during growth; the driver
// is responsible for marking newly covered pairs after Discover returns.
func NewDiscoverer(g *graph.Graph, oracle pathfinding.Oracle, chooser CenterChooser, cov *CoverageMatrix) *Discoverer {
	return &Discoverer{g: g, oracle: oracle, chooser: chooser, cov: cov}
}

// Discover grows the maximal patch around a center found for (s0, t0). It
// returns (nil, false) if no center exists (the pair is unreachable).
func (d *Discoverer) Discover(s0, t0 graph.Node) (*NodeSelection, bool) {
	center, ok := d.chooser.Choose(s0, t0)
	if !ok {
		return nil, false
	}

	n := graph.Node(d.g.NumNodes)

	sourcePatch := Patch{{Node: s0, Dist: d.oracle.FindDistance(s0, center)}}
	targetPatch := Patch{{Node: t0, Dist: d.oracle.FindDistance(center, t0)}}

	for u := graph.Node(0); u < n; u++ {
		if u == center || u == s0 {
			continue
		}
		if !d.newlyCoversAny(u, targetPatch, true) {
			continue
		}
		if dist, ok := d.checkSourceAffiliation(u, center, targetPatch); ok {
			sourcePatch = append(sourcePatch, PatchEntry{Node: u, Dist: dist})
		}
	}

	for v := graph.Node(0); v < n; v++ {
		if v == center || v == t0 {
			continue
		}
		if !d.newlyCoversAny(v, sourcePatch, false) {
			continue
		}
		if dist, ok := d.checkTargetAffiliation(v, center, sourcePatch); ok {
			targetPatch = append(targetPatch, PatchEntry{Node: v, Dist: dist})
		}
	}

	sort.Slice(sourcePatch, func(i, j int) bool { return sourcePatch[i].Node < sourcePatch[j].Node })
	sort.Slice(targetPatch, func(i, j int) bool { return targetPatch[i].Node < targetPatch[j].Node })

	return &NodeSelection{SourcePatch: sourcePatch, TargetPatch: targetPatch, Center: center}, true
}

// newlyCoversAny reports whether admitting candidate as a source (fromSource
// true) or target (false) against the opposite patch would resolve at
// least one pair not already marked covered. Skipping candidates that
// cover nothing new avoids the O(|opposite|) affiliation check entirely.
func (d *Discoverer) newlyCoversAny(candidate graph.Node, opposite Patch, fromSource bool) bool {
	for _, e := range opposite {
		var s, t graph.Node
		if fromSource {
			s, t = candidate, e.Node
		} else {
			s, t = e.Node, candidate
		}
		if !d.cov.IsCovered(s, t) {
			return true
		}
	}
	return len(opposite) == 0
}

// checkSourceAffiliation mirrors NodeSelectionCalculator::checkSourceAffiliation:
// u joins the source patch iff dist(u,center) is finite and, for every
// already-admitted target v, dist(u,v) == dist(u,center) + dist(center,v).
func (d *Discoverer) checkSourceAffiliation(u, center graph.Node, targets Patch) (graph.Distance, bool) {
	centerDist := d.oracle.FindDistance(u, center)
	if centerDist == graph.UNREACHABLE {
		return 0, false
	}

	for _, e := range targets {
		dist := d.oracle.FindDistance(u, e.Node)
		if dist != graph.AddDistance(centerDist, e.Dist) {
			return 0, false
		}
	}

	return centerDist, true
}

// checkTargetAffiliation is the symmetric check for admitting v to the
// target patch against the currently admitted source patch.
func (d *Discoverer) checkTargetAffiliation(v, center graph.Node, sources Patch) (graph.Distance, bool) {
	centerDist := d.oracle.FindDistance(center, v)
	if centerDist == graph.UNREACHABLE {
		return 0, false
	}

	for _, e := range sources {
		dist := d.oracle.FindDistance(e.Node, v)
		if dist != graph.AddDistance(e.Dist, centerDist) {
			return 0, false
		}
	}

	return centerDist, true
}
