// Package pathfinding implements single-source shortest path queries over
// a hublabel graph.Graph: a session-reusing Dijkstra engine that backs both
// one-off distance queries and the label discovery algorithms in
// pkg/selection, plus a materialized all-pairs distance cache for small
// graphs where precomputing every pair is cheaper than querying on demand.
package pathfinding

import (
	"hublabel/pkg/graph"
)

const noNode = ^uint32(0)

// Oracle answers point-to-point distance queries. *Dijkstra, *AllPairsCache
// and hublabel/pkg/ch.Oracle all implement it, so the selection-discovery
// pipeline can be pointed at whichever distance source fits the graph size.
type Oracle interface {
	FindDistance(source, target graph.Node) graph.Distance
}

// Dijkstra is a session-reusing shortest-path engine in the style of a
// caching Dijkstra: repeated queries from the same source resume the
// existing heap and settled set instead of resetting from scratch, so a
// caller that asks the same source about many targets in a row (exactly
// what the discovery engine in pkg/selection does) pays for one Dijkstra
// run instead of one per target.
type Dijkstra struct {
	g *graph.Graph

	dist    []graph.Distance
	pred    []uint32
	settled []bool
	touched []uint32
	pq      minHeap

	lastSource uint32
	hasSource  bool
}

// NewDijkstra creates a Dijkstra engine over g.
func NewDijkstra(g *graph.Graph) *Dijkstra {
	n := g.NumNodes
	dist := make([]graph.Distance, n)
	pred := make([]uint32, n)
	for i := range dist {
		dist[i] = graph.UNREACHABLE
		pred[i] = noNode
	}
	return &Dijkstra{
		g:       g,
		dist:    dist,
		pred:    pred,
		settled: make([]bool, n),
		touched: make([]uint32, 0, 1024),
	}
}

// FindDistance returns the shortest-path distance from source to target,
// or graph.UNREACHABLE if no path exists. Satisfies Oracle.
func (d *Dijkstra) FindDistance(source, target graph.Node) graph.Distance {
	if d.hasSource && source == d.lastSource && d.settled[target] {
		return d.dist[target]
	}

	if !d.hasSource || source != d.lastSource {
		d.lastSource = source
		d.hasSource = true
		d.reset()
		d.touch(source, 0, noNode)
		d.pq.Push(source, 0)
	}

	for d.pq.Len() > 0 {
		top := d.pq.Peek()
		current, currentDist := top.Node, top.Dist

		if current == target {
			d.settled[current] = true
			return currentDist
		}

		d.settled[current] = true

		// Pop only after the target check above — popping first and then
		// returning would drop this entry when a later call resumes the
		// same heap.
		d.pq.Pop()

		if currentDist >= graph.UNREACHABLE {
			continue
		}

		start, end := d.g.FwdEdgesFrom(current)
		for e := start; e < end; e++ {
			neighbor := d.g.FwdHead[e]
			newDist := graph.AddDistance(currentDist, d.g.FwdWeight[e])
			if newDist < d.dist[neighbor] {
				d.touch(neighbor, newDist, current)
				d.pq.Push(neighbor, newDist)
			}
		}
	}

	return d.dist[target]
}

// FindPath runs FindDistance and reconstructs the shortest path as a
// sequence of nodes from source to target. Returns ok=false when the
// target is unreachable.
func (d *Dijkstra) FindPath(source, target graph.Node) (Path, bool) {
	dist := d.FindDistance(source, target)
	if dist >= graph.UNREACHABLE {
		return Path{}, false
	}

	var nodes []uint32
	cur := target
	for cur != noNode {
		nodes = append(nodes, cur)
		if cur == source {
			break
		}
		cur = d.pred[cur]
	}
	// Reverse into source-to-target order.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return Path{Nodes: nodes, Distance: dist}, true
}

func (d *Dijkstra) touch(n uint32, dist graph.Distance, pred uint32) {
	if !d.settled[n] && d.dist[n] == graph.UNREACHABLE {
		d.touched = append(d.touched, n)
	}
	d.dist[n] = dist
	d.pred[n] = pred
}

// reset clears only the touched entries from the previous source, an
// O(touched) operation instead of an O(n) array clear.
func (d *Dijkstra) reset() {
	for _, n := range d.touched {
		d.dist[n] = graph.UNREACHABLE
		d.pred[n] = noNode
		d.settled[n] = false
	}
	d.touched = d.touched[:0]
	d.pq.Reset()
}
