package pathfinding

import (
	"testing"

	"hublabel/pkg/graph"
)

func TestAllPairsCacheMatchesDijkstra(t *testing.T) {
	g := buildTestGraph()
	cache := BuildAllPairsCache(g, 2)
	dij := NewDijkstra(g)

	for s := uint32(0); s < g.NumNodes; s++ {
		for target := uint32(0); target < g.NumNodes; target++ {
			want := dij.FindDistance(s, target)
			got := cache.FindDistance(s, target)
			if got != want {
				t.Errorf("cache.FindDistance(%d,%d) = %d, want %d", s, target, got, want)
			}
		}
	}
}

func TestAllPairsCacheEmptyGraph(t *testing.T) {
	g := &graph.Graph{}
	cache := BuildAllPairsCache(g, 0)
	if cache.numNodes != 0 {
		t.Errorf("numNodes = %d, want 0", cache.numNodes)
	}
}
