// Package ch implements Contraction Hierarchies preprocessing and a
// distance-only bidirectional query over the resulting overlay graph. It
// exists as an alternative Oracle to pkg/pathfinding's plain Dijkstra and
// all-pairs cache: for graphs too large to materialize an N×N distance
// matrix, CH answers a single point-to-point distance query in
// near-constant time after a one-time contraction pass, which is exactly
// what the label discovery engine in pkg/selection needs when it's pointed
// at a full-size road network instead of a toy fixture.
package ch

import "hublabel/pkg/graph"

// maxShortcutsPerNode is the limit on shortcuts a single contraction can create.
// Nodes exceeding this form an uncontracted "core" at the top of the hierarchy.
const maxShortcutsPerNode = 1000

// Overlay holds the output of Contraction Hierarchies preprocessing: the
// upward-only forward and backward graphs used by a bidirectional query,
// plus the node order that defines "upward".
type Overlay struct {
	NumNodes uint32
	Rank     []uint32

	// Forward upward graph: edges u->v kept where Rank[u] < Rank[v].
	FwdFirstOut []uint32
	FwdHead     []uint32
	FwdWeight   []graph.Distance

	// Backward upward graph: for an original edge v->u with Rank[u] < Rank[v],
	// stored here as u->v, so a backward search from the target walks it the
	// same way a forward search walks FwdFirstOut.
	BwdFirstOut []uint32
	BwdHead     []uint32
	BwdWeight   []graph.Distance
}

// adjEntry represents an edge in the mutable adjacency list used during
// contraction. middle is -1 for original edges, or the contracted node ID
// that a shortcut edge bypasses.
type adjEntry struct {
	to     uint32
	weight graph.Distance
	middle int32
}
