package selection

import (
	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// CenterChooser picks a center vertex on some shortest s->t path. The
// middle-vertex policy is authoritative; the others are alternative
// centrality-weighted policies observed alongside it.
type CenterChooser interface {
	Choose(s, t graph.Node) (graph.Node, bool)
}

// MiddleChooser returns path[len/2] of a reconstructed shortest path.
// This is the default, authoritative policy.
type MiddleChooser struct {
	finder *pathfinding.Dijkstra
}

// NewMiddleChooser builds a chooser that reconstructs paths with its own
// Dijkstra instance, independent of whatever oracle backs distance lookups.
func NewMiddleChooser(g *graph.Graph) *MiddleChooser {
	return &MiddleChooser{finder: pathfinding.NewDijkstra(g)}
}

func (c *MiddleChooser) Choose(s, t graph.Node) (graph.Node, bool) {
	path, ok := c.finder.FindPath(s, t)
	if !ok || len(path.Nodes) == 0 {
		return 0, false
	}
	return path.MiddleNode(), true
}

// centralityChooser is shared plumbing for the closeness and page-rank
// policies: reconstruct a shortest path, then pick the path vertex with
// the highest score under a centrality measure computed over the whole
// graph once at construction time.
type centralityChooser struct {
	finder *pathfinding.Dijkstra
	score  map[int64]float64
}

func newCentralityChooser(g *graph.Graph, score map[int64]float64) *centralityChooser {
	return &centralityChooser{finder: pathfinding.NewDijkstra(g), score: score}
}

func (c *centralityChooser) choose(s, t graph.Node) (graph.Node, bool) {
	path, ok := c.finder.FindPath(s, t)
	if !ok || len(path.Nodes) == 0 {
		return 0, false
	}

	best := path.Nodes[0]
	bestScore := c.score[int64(best)]
	for _, n := range path.Nodes[1:] {
		if sc := c.score[int64(n)]; sc > bestScore {
			best, bestScore = n, sc
		}
	}
	return best, true
}

// buildWeightedDigraph materializes a gonum simple.WeightedDirectedGraph
// mirroring g's forward CSR, for consumption by gonum's centrality
// measures, which operate over graph.Weighted rather than raw CSR arrays.
func buildWeightedDigraph(g *graph.Graph) *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, 0)
	for n := graph.Node(0); n < graph.Node(g.NumNodes); n++ {
		wg.AddNode(simple.Node(n))
	}
	for u := graph.Node(0); u < graph.Node(g.NumNodes); u++ {
		start, end := g.FwdEdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.FwdHead[e]
			w := g.FwdWeight[e]
			wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(u), simple.Node(v), float64(w)))
		}
	}
	return wg
}

// ClosenessChooser weights path vertices by graph closeness centrality
// (inverse of the average shortest-path distance to every other vertex)
// computed once over the whole graph.
type ClosenessChooser struct{ *centralityChooser }

// NewClosenessChooser computes closeness centrality for every vertex up
// front; this is all-pairs shortest-path work delegated to gonum, separate from
// pkg/pathfinding's own all-pairs cache.
func NewClosenessChooser(g *graph.Graph) *ClosenessChooser {
	wg := buildWeightedDigraph(g)
	paths := path.DijkstraAllPaths(wg)
	scores := network.Closeness(wg, paths)
	return &ClosenessChooser{newCentralityChooser(g, scores)}
}

func (c *ClosenessChooser) Choose(s, t graph.Node) (graph.Node, bool) { return c.choose(s, t) }

// PageRankChooser weights path vertices by PageRank score over the graph.
type PageRankChooser struct{ *centralityChooser }

const pageRankDamping = 0.85

// NewPageRankChooser computes PageRank for every vertex up front.
func NewPageRankChooser(g *graph.Graph) *PageRankChooser {
	wg := buildWeightedDigraph(g)
	scores := network.PageRank(wg, pageRankDamping, 1e-6)
	return &PageRankChooser{newCentralityChooser(g, scores)}
}

func (c *PageRankChooser) Choose(s, t graph.Node) (graph.Node, bool) { return c.choose(s, t) }
