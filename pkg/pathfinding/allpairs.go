package pathfinding

import (
	"runtime"
	"sync"

	"hublabel/pkg/graph"
)

// AllPairsCache is a materialized N×N distance matrix, suitable for graphs
// small enough that precomputing every pair up front is cheaper than
// answering each FindDistance call on demand — which is exactly the
// workload the label-discovery algorithms in pkg/selection generate
// (thousands of repeated queries against the same small patch of nodes).
type AllPairsCache struct {
	numNodes uint32
	dist     []graph.Distance // flattened row-major: dist[from*numNodes+to]
}

// BuildAllPairsCache runs Dijkstra from every node in g and materializes
// the resulting distance matrix, using up to `workers` goroutines (each
// with its own Dijkstra scratch state, so there's no contention on shared
// mutable search state). workers <= 0 defaults to GOMAXPROCS.
func BuildAllPairsCache(g *graph.Graph, workers int) *AllPairsCache {
	n := g.NumNodes
	cache := &AllPairsCache{
		numNodes: n,
		dist:     make([]graph.Distance, uint64(n)*uint64(n)),
	}
	if n == 0 {
		return cache
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > int(n) {
		workers = int(n)
	}

	rows := make(chan uint32, n)
	for i := uint32(0); i < n; i++ {
		rows <- i
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dij := NewDijkstra(g)
			for from := range rows {
				base := uint64(from) * uint64(n)
				for to := uint32(0); to < n; to++ {
					cache.dist[base+uint64(to)] = dij.FindDistance(from, to)
				}
			}
		}()
	}
	wg.Wait()

	return cache
}

// FindDistance returns the precomputed distance from source to target.
// Satisfies Oracle.
func (c *AllPairsCache) FindDistance(source, target graph.Node) graph.Distance {
	return c.dist[uint64(source)*uint64(c.numNodes)+uint64(target)]
}

// Release frees the backing matrix. Call once the cache has been consumed
// by whatever preprocessing step needed it — mirrors the teacher's
// destroy()/release_scratch() pattern of dropping large intermediate
// buffers as soon as a pipeline stage is done with them.
func (c *AllPairsCache) Release() {
	c.dist = nil
}
