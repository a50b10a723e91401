package graph

import "testing"

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)

	for i := range uint32(5) {
		if uf.Find(i) != i {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), i)
		}
	}

	uf.Union(0, 1)
	if uf.Find(0) != uf.Find(1) {
		t.Error("0 and 1 should be in same set")
	}

	uf.Union(2, 3)
	if uf.Find(2) != uf.Find(3) {
		t.Error("2 and 3 should be in same set")
	}

	if uf.Find(0) == uf.Find(2) {
		t.Error("0 and 2 should be in different sets")
	}

	uf.Union(1, 3)
	if uf.Find(0) != uf.Find(3) {
		t.Error("0 and 3 should now be in same set")
	}
}

func TestLargestComponent(t *testing.T) {
	// Component 1: 0 <-> 1 <-> 2 (3 nodes). Component 2: 3 <-> 4 (2 nodes).
	g := NewGraph(5,
		[]uint32{0, 1, 1, 2, 3, 4},
		[]uint32{1, 0, 2, 1, 4, 3},
		[]Distance{100, 100, 200, 200, 300, 300},
	)

	nodes := LargestComponent(g)
	if len(nodes) != 3 {
		t.Fatalf("LargestComponent has %d nodes, want 3", len(nodes))
	}
}

func TestFilterToComponent(t *testing.T) {
	// Component 1: triangle 0,1,2. Component 2: isolated pair 3,4.
	g := NewGraph(5,
		[]uint32{0, 1, 2, 3},
		[]uint32{1, 2, 0, 4},
		[]Distance{100, 200, 300, 400},
	)

	nodes := LargestComponent(g)
	filtered := FilterToComponent(g, nodes)

	if filtered.NumNodes != 3 {
		t.Fatalf("filtered NumNodes = %d, want 3", filtered.NumNodes)
	}
	if filtered.NumEdges != 3 {
		t.Fatalf("filtered NumEdges = %d, want 3", filtered.NumEdges)
	}

	for i := uint32(1); i <= filtered.NumNodes; i++ {
		if filtered.FwdFirstOut[i] < filtered.FwdFirstOut[i-1] {
			t.Errorf("FwdFirstOut not monotonic at %d", i)
		}
	}
	if filtered.FwdFirstOut[filtered.NumNodes] != filtered.NumEdges {
		t.Error("FwdFirstOut[NumNodes] != NumEdges")
	}
	for i, h := range filtered.FwdHead {
		if h >= filtered.NumNodes {
			t.Errorf("FwdHead[%d] = %d >= NumNodes %d", i, h, filtered.NumNodes)
		}
	}

	var total Distance
	for _, w := range filtered.FwdWeight {
		total += w
	}
	if total != 600 {
		t.Errorf("total weight = %d, want 600", total)
	}
}

func TestFilterToComponentEmptyGraph(t *testing.T) {
	g := &Graph{}
	nodes := LargestComponent(g)
	if nodes != nil {
		t.Errorf("expected nil for empty graph, got %v", nodes)
	}

	filtered := FilterToComponent(g, nil)
	if filtered.NumNodes != 0 || filtered.NumEdges != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", filtered.NumNodes, filtered.NumEdges)
	}
}
