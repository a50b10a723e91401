// Package graph implements the compact directed graph representation that
// every other package in hublabel builds on: a two-sided Compressed Sparse
// Row layout that supports both forward traversal (Dijkstra expansion) and
// backward traversal (reverse Dijkstra, in-label construction) without
// walking an adjacency list twice.
package graph

import (
	"errors"
	"sort"
)

// Node identifies a vertex by its position in the CSR arrays.
type Node = uint32

// Distance is an edge weight or path length. Units are whatever the input
// graph uses (FMI files are typically tenths-of-a-meter or milliseconds;
// OSM import produces millimeters).
type Distance = int64

// UNREACHABLE marks the absence of a path between two nodes. It is chosen
// so that reasonable arithmetic (adding a handful of edge weights) never
// overflows Distance.
const UNREACHABLE Distance = 1 << 62

// AddDistance adds two distances, saturating at UNREACHABLE instead of
// overflowing or silently wrapping when either operand is already
// UNREACHABLE.
func AddDistance(a, b Distance) Distance {
	if a >= UNREACHABLE || b >= UNREACHABLE {
		return UNREACHABLE
	}
	sum := a + b
	if sum >= UNREACHABLE {
		return UNREACHABLE
	}
	return sum
}

var (
	// ErrEmptyGraph is returned when an operation requires at least one node.
	ErrEmptyGraph = errors.New("graph: empty graph")
	// ErrVertexNotFound is returned when a node index is out of range.
	ErrVertexNotFound = errors.New("graph: vertex not found")
	// ErrMalformedFMI is returned when an FMI file cannot be parsed.
	ErrMalformedFMI = errors.New("graph: malformed FMI file")
)

// Graph is a directed, weighted graph stored in CSR format, indexed both
// forward (for Dijkstra from a source) and backward (for Dijkstra from a
// target, needed by the two-sided discovery engine).
type Graph struct {
	NumNodes uint32
	NumEdges uint32

	// Forward adjacency: edges leaving node i live in
	// Head[FwdFirstOut[i]:FwdFirstOut[i+1]], sorted by target.
	FwdFirstOut []uint32
	FwdHead     []uint32
	FwdWeight   []Distance

	// Backward adjacency: the same edge set, reversed and re-sorted by
	// source, so a reverse Dijkstra can walk it exactly like a forward one.
	BwdFirstOut []uint32
	BwdHead     []uint32
	BwdWeight   []Distance

	// Optional node coordinates, populated by FMI/OSM ingestion. Nil when
	// the graph was built without geometry (e.g. synthetic test fixtures).
	NodeLat []float64
	NodeLon []float64
}

// NewGraph builds a Graph from a flat edge list. Edges with the same
// (from, to) pair are kept as parallel edges; callers that want simple
// graphs should dedupe beforehand.
func NewGraph(numNodes uint32, from, to []uint32, weight []Distance) *Graph {
	numEdges := uint32(len(from))

	type rawEdge struct {
		from, to uint32
		weight   Distance
	}
	edges := make([]rawEdge, numEdges)
	for i := range from {
		edges[i] = rawEdge{from[i], to[i], weight[i]}
	}

	fwdFirstOut, fwdHead, fwdWeight := buildCSR(numNodes, edges, func(e rawEdge) (uint32, uint32, Distance) {
		return e.from, e.to, e.weight
	})
	bwdFirstOut, bwdHead, bwdWeight := buildCSR(numNodes, edges, func(e rawEdge) (uint32, uint32, Distance) {
		return e.to, e.from, e.weight
	})

	return &Graph{
		NumNodes:    numNodes,
		NumEdges:    numEdges,
		FwdFirstOut: fwdFirstOut,
		FwdHead:     fwdHead,
		FwdWeight:   fwdWeight,
		BwdFirstOut: bwdFirstOut,
		BwdHead:     bwdHead,
		BwdWeight:   bwdWeight,
	}
}

// buildCSR sorts edges by the key returned by `keyOf` (source, target,
// weight) and emits them in counting-sort CSR form.
func buildCSR[E any](numNodes uint32, edges []E, keyOf func(E) (uint32, uint32, Distance)) ([]uint32, []uint32, []Distance) {
	type sortable struct {
		from, to uint32
		weight   Distance
	}
	rows := make([]sortable, len(edges))
	for i, e := range edges {
		from, to, w := keyOf(e)
		rows[i] = sortable{from, to, w}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].from != rows[j].from {
			return rows[i].from < rows[j].from
		}
		return rows[i].to < rows[j].to
	})

	firstOut := make([]uint32, numNodes+1)
	for _, e := range rows {
		firstOut[e.from+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	head := make([]uint32, len(rows))
	weight := make([]Distance, len(rows))
	for i, e := range rows {
		head[i] = e.to
		weight[i] = e.weight
	}
	return firstOut, head, weight
}

// FwdEdgesFrom returns the range of edge indices for edges leaving node u.
func (g *Graph) FwdEdgesFrom(u uint32) (start, end uint32) {
	return g.FwdFirstOut[u], g.FwdFirstOut[u+1]
}

// BwdEdgesFrom returns the range of edge indices for edges entering node u,
// expressed as (source, weight) pairs reachable by walking backward.
func (g *Graph) BwdEdgesFrom(u uint32) (start, end uint32) {
	return g.BwdFirstOut[u], g.BwdFirstOut[u+1]
}

// FwdEdgeExists reports whether a directed edge from u to v exists, via
// binary search over the sorted forward adjacency of u.
func (g *Graph) FwdEdgeExists(u, v uint32) bool {
	start, end := g.FwdEdgesFrom(u)
	row := g.FwdHead[start:end]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= v })
	return i < len(row) && row[i] == v
}

// BwdEdgeExists reports whether a directed edge from v to u exists, via
// binary search over the sorted backward adjacency of u.
func (g *Graph) BwdEdgeExists(u, v uint32) bool {
	start, end := g.BwdEdgesFrom(u)
	row := g.BwdHead[start:end]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= v })
	return i < len(row) && row[i] == v
}
