// Package selection implements the hub-label preprocessing pipeline:
// patch discovery around a chosen center, a driver that samples uncovered
// pairs until the coverage matrix is exhausted, a per-vertex greedy
// set-cover optimizer, and the sorted two-pointer intersection lookup that
// answers queries from the optimized labels.
package selection

import "hublabel/pkg/graph"

// PatchEntry is one (node, distance-to-center) pair within a patch.
type PatchEntry struct {
	Node graph.Node
	Dist graph.Distance
}

// Patch is a sorted-by-node sequence of PatchEntry.
type Patch []PatchEntry

// NodeSelection is a discovered rectangular source x target patch that
// shares a common center on every shortest path between its members.
type NodeSelection struct {
	SourcePatch Patch
	TargetPatch Patch
	Center      graph.Node
}

// Weight is |S|*|T|, the number of (s,t) pairs this selection resolves.
func (s *NodeSelection) Weight() int {
	return len(s.SourcePatch) * len(s.TargetPatch)
}

// IsEmpty reports whether both patches are empty.
func (s *NodeSelection) IsEmpty() bool {
	return len(s.SourcePatch) == 0 && len(s.TargetPatch) == 0
}

// CanAnswer reports whether this selection's patches contain from and to.
func (s *NodeSelection) CanAnswer(from, to graph.Node) bool {
	return patchContains(s.SourcePatch, from) && patchContains(s.TargetPatch, to)
}

func patchContains(p Patch, n graph.Node) bool {
	lo, hi := 0, len(p)
	for lo < hi {
		mid := (lo + hi) / 2
		if p[mid].Node < n {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(p) && p[lo].Node == n
}
