package selection

import (
	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// CenterEntry is one (selection_id, distance) pair in a per-vertex label
// or intermediate index, sorted ascending by SelectionID.
type CenterEntry struct {
	SelectionID int
	Dist        graph.Distance
}

// Optimizer reduces every vertex's selection membership to a minimal
// covering set via greedy set cover, producing the two-sided labels
// consumed by Lookup. Grounded on the original's SelectionOptimizer:
// same src_sel/tgt_sel intermediate build and greedy-maximize-new-coverage
// loop, generalized to Go's CenterSet-equivalent ([]CenterEntry) and a
// shared keep-list per side.
type Optimizer struct {
	g          *graph.Graph
	oracle     pathfinding.Oracle
	selections []NodeSelection
	prune      graph.Distance
	maxPerNode int

	srcSel []([]CenterEntry)
	tgtSel []([]CenterEntry)

	keepListOut map[int]bool
	keepListIn  map[int]bool
}

// NewOptimizer builds the intermediate src_sel/tgt_sel indices by scanning
// every selection once. maxPerNode bounds non-self-centered elected
// selections per vertex; pass a negative value for "unbounded."
func NewOptimizer(g *graph.Graph, oracle pathfinding.Oracle, selections []NodeSelection, prune graph.Distance, maxPerNode int) *Optimizer {
	o := &Optimizer{
		g:           g,
		oracle:      oracle,
		selections:  selections,
		prune:       prune,
		maxPerNode:  maxPerNode,
		srcSel:      make([][]CenterEntry, g.NumNodes),
		tgtSel:      make([][]CenterEntry, g.NumNodes),
		keepListOut: make(map[int]bool),
		keepListIn:  make(map[int]bool),
	}

	for i, sel := range selections {
		for _, e := range sel.SourcePatch {
			o.srcSel[e.Node] = append(o.srcSel[e.Node], CenterEntry{SelectionID: i, Dist: e.Dist})
		}
		for _, e := range sel.TargetPatch {
			o.tgtSel[e.Node] = append(o.tgtSel[e.Node], CenterEntry{SelectionID: i, Dist: e.Dist})
		}
	}

	return o
}

// Optimize runs optimize_out and optimize_in for every vertex, sequentially
// (deterministic, per spec's concurrency model). Must be called before
// Lookup(); it mutates the intermediate srcSel/tgtSel indices in place.
func (o *Optimizer) Optimize() {
	for n := graph.Node(0); n < graph.Node(o.g.NumNodes); n++ {
		o.optimizeOut(n)
		o.optimizeIn(n)
	}
}

// Lookup returns the finalized two-sided intersection oracle. Call after
// Optimize.
func (o *Optimizer) Lookup() *Lookup {
	centers := make([]graph.Node, len(o.selections))
	for i, sel := range o.selections {
		centers[i] = sel.Center
	}
	return &Lookup{
		centers: centers,
		srcSel:  o.srcSel,
		tgtSel:  o.tgtSel,
	}
}

func (o *Optimizer) unbounded() bool { return o.maxPerNode < 0 }

// optimizeOut runs the greedy set cover for vertex n's out-label: choose
// the minimal subsequence of srcSel[n] whose target patches jointly cover
// every v with find_distance(n,v) > prune.
func (o *Optimizer) optimizeOut(n graph.Node) {
	candidates := o.srcSel[n]

	required := make(map[graph.Node]bool)
	for _, ce := range candidates {
		sel := &o.selections[ce.SelectionID]
		if sel.Center == n {
			continue
		}
		for _, t := range sel.TargetPatch {
			if o.oracle.FindDistance(n, t.Node) > o.prune {
				required[t.Node] = true
			}
		}
	}

	elected := make(map[int]bool)
	covered := make(map[graph.Node]bool)
	nonSelfCount := 0

	for _, ce := range candidates {
		if !o.keepListOut[ce.SelectionID] {
			continue
		}
		if !o.unbounded() && nonSelfCount >= o.maxPerNode {
			break
		}
		sel := &o.selections[ce.SelectionID]
		for _, t := range sel.TargetPatch {
			covered[t.Node] = true
		}
		if sel.Center != n {
			elected[ce.SelectionID] = true
			nonSelfCount++
		}
	}

	for (o.unbounded() || nonSelfCount < o.maxPerNode) && !coversAll(required, covered) {
		best, bestGain := o.bestOutCandidate(n, candidates, covered)
		if bestGain < 0 {
			break
		}

		sel := &o.selections[best]
		for _, t := range sel.TargetPatch {
			covered[t.Node] = true
		}
		if sel.Center != n {
			o.keepListOut[best] = true
			nonSelfCount++
		}
		elected[best] = true
	}

	o.srcSel[n] = filterElected(candidates, elected)
}

// optimizeIn is the symmetric greedy set cover for vertex n's in-label.
func (o *Optimizer) optimizeIn(n graph.Node) {
	candidates := o.tgtSel[n]

	required := make(map[graph.Node]bool)
	for _, ce := range candidates {
		sel := &o.selections[ce.SelectionID]
		for _, s := range sel.SourcePatch {
			if s.Node != n && o.oracle.FindDistance(s.Node, n) > o.prune {
				required[s.Node] = true
			}
		}
	}

	elected := make(map[int]bool)
	covered := make(map[graph.Node]bool)
	nonSelfCount := 0

	for _, ce := range candidates {
		if !o.keepListIn[ce.SelectionID] {
			continue
		}
		if !o.unbounded() && nonSelfCount >= o.maxPerNode {
			break
		}
		sel := &o.selections[ce.SelectionID]
		for _, s := range sel.SourcePatch {
			covered[s.Node] = true
		}
		if sel.Center != n {
			elected[ce.SelectionID] = true
			nonSelfCount++
		}
	}

	for (o.unbounded() || nonSelfCount < o.maxPerNode) && !coversAll(required, covered) {
		best, bestGain := o.bestInCandidate(n, candidates, covered)
		if bestGain < 0 {
			break
		}

		sel := &o.selections[best]
		for _, s := range sel.SourcePatch {
			covered[s.Node] = true
		}
		if sel.Center != n {
			o.keepListIn[best] = true
			nonSelfCount++
		}
		elected[best] = true
	}

	o.tgtSel[n] = filterElected(candidates, elected)
}

// bestOutCandidate picks the selection in candidates maximizing the count
// of target-patch members not already in covered (excluding n itself and
// pairs already within the prune radius).
func (o *Optimizer) bestOutCandidate(n graph.Node, candidates []CenterEntry, covered map[graph.Node]bool) (int, int) {
	best, bestGain := -1, -1
	for _, ce := range candidates {
		sel := &o.selections[ce.SelectionID]
		gain := 0
		for _, t := range sel.TargetPatch {
			if t.Node == n || covered[t.Node] {
				continue
			}
			if o.oracle.FindDistance(n, t.Node) > o.prune {
				gain++
			}
		}
		if gain > bestGain {
			best, bestGain = ce.SelectionID, gain
		}
	}
	return best, bestGain
}

func (o *Optimizer) bestInCandidate(n graph.Node, candidates []CenterEntry, covered map[graph.Node]bool) (int, int) {
	best, bestGain := -1, -1
	for _, ce := range candidates {
		sel := &o.selections[ce.SelectionID]
		gain := 0
		for _, s := range sel.SourcePatch {
			if s.Node == n || covered[s.Node] {
				continue
			}
			if o.oracle.FindDistance(s.Node, n) > o.prune {
				gain++
			}
		}
		if gain > bestGain {
			best, bestGain = ce.SelectionID, gain
		}
	}
	return best, bestGain
}

func coversAll(required, covered map[graph.Node]bool) bool {
	for n := range required {
		if !covered[n] {
			return false
		}
	}
	return true
}

// filterElected rebuilds a []CenterEntry restricted to elected ids,
// preserving original (selection_id ascending) order.
func filterElected(candidates []CenterEntry, elected map[int]bool) []CenterEntry {
	out := make([]CenterEntry, 0, len(elected))
	for _, ce := range candidates {
		if elected[ce.SelectionID] {
			out = append(out, ce)
		}
	}
	return out
}
