package graph

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte // byte is sufficient — max rank ~30 for realistic graphs
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// LargestComponent returns the node indices belonging to the largest
// weakly connected component (treating the directed graph as undirected).
// hublabel does not apply this automatically — disconnected pairs simply
// answer UNREACHABLE — but cmd/preprocess uses it to warn operators when
// a graph is badly fragmented before they spend time building selections
// that can never answer most pairs.
func LargestComponent(g *Graph) []uint32 {
	if g.NumNodes == 0 {
		return nil
	}

	uf := NewUnionFind(g.NumNodes)

	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.FwdEdgesFrom(u)
		for e := start; e < end; e++ {
			uf.Union(u, g.FwdHead[e])
		}
	}

	bestRoot := uint32(0)
	bestSize := uint32(0)
	for i := uint32(0); i < g.NumNodes; i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot = root
			bestSize = uf.size[root]
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for i := uint32(0); i < g.NumNodes; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}

	return nodes
}

// FilterToComponent creates a new graph containing only the specified nodes.
func FilterToComponent(g *Graph, nodes []uint32) *Graph {
	if len(nodes) == 0 {
		return &Graph{}
	}

	oldToNew := make(map[uint32]uint32, len(nodes))
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = uint32(newIdx)
	}

	numNodes := uint32(len(nodes))

	var from, to []uint32
	var weight []Distance
	for _, oldU := range nodes {
		start, end := g.FwdEdgesFrom(oldU)
		for e := start; e < end; e++ {
			oldV := g.FwdHead[e]
			if newV, ok := oldToNew[oldV]; ok {
				from = append(from, oldToNew[oldU])
				to = append(to, newV)
				weight = append(weight, g.FwdWeight[e])
			}
		}
	}

	filtered := NewGraph(numNodes, from, to, weight)

	if len(g.NodeLat) == int(g.NumNodes) {
		nodeLat := make([]float64, numNodes)
		nodeLon := make([]float64, numNodes)
		for newIdx, oldIdx := range nodes {
			nodeLat[newIdx] = g.NodeLat[oldIdx]
			nodeLon[newIdx] = g.NodeLon[oldIdx]
		}
		filtered.NodeLat = nodeLat
		filtered.NodeLon = nodeLon
	}

	return filtered
}
