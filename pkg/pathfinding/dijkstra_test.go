package pathfinding

import (
	"math"
	"testing"

	"hublabel/pkg/graph"
)

// buildTestGraph creates:
//
//	0 ---100--- 1 ---200--- 2
//	|                       |
//	300                    400
//	|                       |
//	3 ---500--- 4 ---600--- 5
//
// All edges bidirectional.
func buildTestGraph() *graph.Graph {
	return graph.NewGraph(6,
		[]uint32{0, 1, 1, 2, 0, 3, 2, 5, 3, 4, 4, 5},
		[]uint32{1, 0, 2, 1, 3, 0, 5, 2, 4, 3, 5, 4},
		[]graph.Distance{100, 100, 200, 200, 300, 300, 400, 400, 500, 500, 600, 600},
	)
}

// plainDijkstra runs a naive O(V^2) Dijkstra for cross-checking.
func plainDijkstra(g *graph.Graph, source, target uint32) graph.Distance {
	dist := make([]graph.Distance, g.NumNodes)
	for i := range dist {
		dist[i] = graph.UNREACHABLE
	}
	dist[source] = 0

	visited := make([]bool, g.NumNodes)
	for {
		u := uint32(math.MaxUint32)
		best := graph.UNREACHABLE
		for i := uint32(0); i < g.NumNodes; i++ {
			if !visited[i] && dist[i] < best {
				best = dist[i]
				u = i
			}
		}
		if u == math.MaxUint32 {
			break
		}
		visited[u] = true

		start, end := g.FwdEdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.FwdHead[e]
			nd := dist[u] + g.FwdWeight[e]
			if nd < dist[v] {
				dist[v] = nd
			}
		}
	}
	return dist[target]
}

func TestDijkstraCorrectness(t *testing.T) {
	g := buildTestGraph()
	dij := NewDijkstra(g)

	for s := uint32(0); s < g.NumNodes; s++ {
		for target := uint32(0); target < g.NumNodes; target++ {
			want := plainDijkstra(g, s, target)
			got := dij.FindDistance(s, target)
			if got != want {
				t.Errorf("FindDistance(%d,%d) = %d, want %d", s, target, got, want)
			}
		}
	}
}

func TestDijkstraSessionReuse(t *testing.T) {
	g := buildTestGraph()
	dij := NewDijkstra(g)

	// Querying several targets from the same source should resume rather
	// than reset, and still return correct answers for each.
	d1 := dij.FindDistance(0, 5)
	d2 := dij.FindDistance(0, 2)
	d3 := dij.FindDistance(0, 3)

	if d1 != 700 {
		t.Errorf("dist(0,5) = %d, want 700", d1)
	}
	if d2 != 300 {
		t.Errorf("dist(0,2) = %d, want 300", d2)
	}
	if d3 != 300 {
		t.Errorf("dist(0,3) = %d, want 300", d3)
	}
}

func TestDijkstraUnreachable(t *testing.T) {
	g := graph.NewGraph(3, []uint32{0}, []uint32{1}, []graph.Distance{10})
	dij := NewDijkstra(g)
	if d := dij.FindDistance(0, 2); d != graph.UNREACHABLE {
		t.Errorf("dist(0,2) = %d, want UNREACHABLE", d)
	}
}

func TestDijkstraFindPath(t *testing.T) {
	g := buildTestGraph()
	dij := NewDijkstra(g)

	p, ok := dij.FindPath(0, 5)
	if !ok {
		t.Fatal("expected reachable path")
	}
	if p.Source() != 0 || p.Target() != 5 {
		t.Errorf("path endpoints = (%d,%d), want (0,5)", p.Source(), p.Target())
	}
	if p.Distance != 700 {
		t.Errorf("path distance = %d, want 700", p.Distance)
	}
}

func TestMinHeap(t *testing.T) {
	var h minHeap

	h.Push(1, 30)
	h.Push(2, 10)
	h.Push(3, 20)

	if h.Peek().Dist != 10 {
		t.Errorf("Peek().Dist = %d, want 10", h.Peek().Dist)
	}

	item := h.Pop()
	if item.Node != 2 || item.Dist != 10 {
		t.Errorf("Pop = {%d, %d}, want {2, 10}", item.Node, item.Dist)
	}

	item = h.Pop()
	if item.Node != 3 || item.Dist != 20 {
		t.Errorf("Pop = {%d, %d}, want {3, 20}", item.Node, item.Dist)
	}

	item = h.Pop()
	if item.Node != 1 || item.Dist != 30 {
		t.Errorf("Pop = {%d, %d}, want {1, 30}", item.Node, item.Dist)
	}

	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}
