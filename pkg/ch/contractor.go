package ch

import (
	"container/heap"
	"log"

	"hublabel/pkg/graph"
)

// Contract performs Contraction Hierarchies preprocessing on g, returning
// the upward overlay graph used for bidirectional distance queries.
func Contract(g *graph.Graph) *Overlay {
	n := g.NumNodes
	if n == 0 {
		return &Overlay{}
	}

	outAdj := make([][]adjEntry, n)
	inAdj := make([][]adjEntry, n)

	for u := uint32(0); u < n; u++ {
		start, end := g.FwdEdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.FwdHead[e]
			w := g.FwdWeight[e]
			outAdj[u] = append(outAdj[u], adjEntry{to: v, weight: w, middle: -1})
			inAdj[v] = append(inAdj[v], adjEntry{to: u, weight: w, middle: -1})
		}
	}

	contracted := make([]bool, n)
	rank := make([]uint32, n)
	contractedNeighbors := make([]int, n)
	level := make([]int, n)

	pq := make(priorityQueue, n)
	for i := uint32(0); i < n; i++ {
		pq[i] = &pqEntry{
			node:     i,
			priority: computePriority(outAdj, inAdj, i, contracted, contractedNeighbors[i], level[i]),
			index:    int(i),
		}
	}
	heap.Init(&pq)

	ws := newWitnessState(n)

	log.Printf("ch: starting contraction of %d nodes", n)

	var totalShortcuts int
	order := uint32(0)
	logInterval := uint32(50000)

	for pq.Len() > 0 {
		entry := heap.Pop(&pq).(*pqEntry)
		node := entry.node

		if contracted[node] {
			continue
		}

		newPriority := computePriority(outAdj, inAdj, node, contracted, contractedNeighbors[node], level[node])
		if newPriority > entry.priority && pq.Len() > 0 && newPriority > pq[0].priority {
			entry.priority = newPriority
			heap.Push(&pq, entry)
			continue
		}

		shortcuts := findShortcuts(ws, outAdj, inAdj, node, contracted)

		// If contracting this node would produce too many shortcuts, stop
		// contraction entirely. Remaining nodes form a "core" at the top of
		// the hierarchy with original edges preserved.
		if len(shortcuts) > maxShortcutsPerNode {
			log.Printf("ch: stopping contraction: node %d would create %d shortcuts (limit %d), %d nodes remain in core",
				node, len(shortcuts), maxShortcutsPerNode, n-order)
			break
		}

		contracted[node] = true
		rank[node] = order
		order++
		totalShortcuts += len(shortcuts)

		for _, sc := range shortcuts {
			outAdj[sc.from] = append(outAdj[sc.from], adjEntry{to: sc.to, weight: sc.weight, middle: int32(node)})
			inAdj[sc.to] = append(inAdj[sc.to], adjEntry{to: sc.from, weight: sc.weight, middle: int32(node)})
		}

		for _, e := range outAdj[node] {
			if !contracted[e.to] {
				contractedNeighbors[e.to]++
				if level[node]+1 > level[e.to] {
					level[e.to] = level[node] + 1
				}
			}
		}
		for _, e := range inAdj[node] {
			if !contracted[e.to] {
				contractedNeighbors[e.to]++
				if level[node]+1 > level[e.to] {
					level[e.to] = level[node] + 1
				}
			}
		}

		remaining := n - order
		switch {
		case remaining < 1000:
			logInterval = 100
		case remaining < 10000:
			logInterval = 1000
		case remaining < 100000:
			logInterval = 10000
		default:
			logInterval = 50000
		}
		if order%logInterval == 0 {
			log.Printf("ch: contracted %d/%d nodes, %d shortcuts so far", order, n, totalShortcuts)
		}
	}

	coreSize := uint32(0)
	for i := uint32(0); i < n; i++ {
		if !contracted[i] {
			contracted[i] = true
			rank[i] = order
			order++
			coreSize++
		}
	}

	log.Printf("ch: contraction complete: %d shortcuts created (%.1fx original edges), %d core nodes",
		totalShortcuts, float64(totalShortcuts)/float64(g.NumEdges), coreSize)

	return buildOverlay(outAdj, inAdj, rank, n)
}

// shortcut represents a shortcut edge to be added.
type shortcut struct {
	from, to uint32
	weight   graph.Distance
}

// findShortcuts determines which shortcuts are needed when contracting a
// node. Uses batch witness search: one Dijkstra per incoming neighbor
// instead of one per (incoming, outgoing) pair, cutting search count from
// O(|in|*|out|) to O(|in|).
func findShortcuts(ws *witnessState, outAdj, inAdj [][]adjEntry, node uint32, contracted []bool) []shortcut {
	var incoming []adjEntry
	for _, e := range inAdj[node] {
		if !contracted[e.to] {
			incoming = append(incoming, e)
		}
	}

	var outgoing []adjEntry
	for _, e := range outAdj[node] {
		if !contracted[e.to] {
			outgoing = append(outgoing, e)
		}
	}

	if len(incoming) == 0 || len(outgoing) == 0 {
		return nil
	}

	var shortcuts []shortcut

	for _, in := range incoming {
		var maxOut graph.Distance
		for _, out := range outgoing {
			if out.to != in.to && out.weight > maxOut {
				maxOut = out.weight
			}
		}
		if maxOut == 0 {
			continue // all outgoing go back to in.to
		}

		maxWeight := in.weight + maxOut

		batchWitnessSearch(ws, outAdj, in.to, node, maxWeight, contracted)

		for _, out := range outgoing {
			if out.to == in.to {
				continue // skip self-loops
			}

			scWeight := in.weight + out.weight

			// dist[out.to] <= scWeight means an alternative path at least
			// as good as the shortcut already exists; no shortcut needed.
			if ws.dist[out.to] > scWeight {
				shortcuts = append(shortcuts, shortcut{from: in.to, to: out.to, weight: scWeight})
			}
		}
	}

	return shortcuts
}

// computePriority returns the priority for a node (lower = contract first).
func computePriority(outAdj, inAdj [][]adjEntry, node uint32, contracted []bool, contractedNeighbors, level int) int {
	activeIn := 0
	for _, e := range inAdj[node] {
		if !contracted[e.to] {
			activeIn++
		}
	}
	activeOut := 0
	for _, e := range outAdj[node] {
		if !contracted[e.to] {
			activeOut++
		}
	}

	// Simplified edge-difference heuristic (worst case in*out); an exact
	// shortcut count would need a witness search per candidate.
	edgeDifference := activeIn*activeOut - (activeIn + activeOut)

	return edgeDifference + 2*contractedNeighbors + level
}

// buildOverlay creates forward and backward upward CSR graphs from the
// contracted adjacency lists and node ranks.
func buildOverlay(outAdj, inAdj [][]adjEntry, rank []uint32, n uint32) *Overlay {
	type csrEdge struct {
		from, to uint32
		weight   graph.Distance
	}

	var fwdEdges, bwdEdges []csrEdge

	for u := uint32(0); u < n; u++ {
		for _, e := range outAdj[u] {
			if rank[u] < rank[e.to] {
				fwdEdges = append(fwdEdges, csrEdge{from: u, to: e.to, weight: e.weight})
			}
		}
		// Backward upward: for edges v->u where rank[u] < rank[v], store
		// as u->v in the backward graph (for backward search from target).
		for _, e := range inAdj[u] {
			if rank[u] < rank[e.to] {
				bwdEdges = append(bwdEdges, csrEdge{from: u, to: e.to, weight: e.weight})
			}
		}
	}

	log.Printf("ch: overlay built with %d forward upward edges, %d backward upward edges", len(fwdEdges), len(bwdEdges))

	build := func(edges []csrEdge) (firstOut, head []uint32, weight []graph.Distance) {
		numEdges := uint32(len(edges))
		firstOut = make([]uint32, n+1)
		head = make([]uint32, numEdges)
		weight = make([]graph.Distance, numEdges)

		for _, e := range edges {
			firstOut[e.from+1]++
		}
		for i := uint32(1); i <= n; i++ {
			firstOut[i] += firstOut[i-1]
		}

		pos := make([]uint32, n)
		copy(pos, firstOut[:n])
		for _, e := range edges {
			idx := pos[e.from]
			head[idx] = e.to
			weight[idx] = e.weight
			pos[e.from]++
		}
		return
	}

	fwdFirstOut, fwdHead, fwdWeight := build(fwdEdges)
	bwdFirstOut, bwdHead, bwdWeight := build(bwdEdges)

	return &Overlay{
		NumNodes:    n,
		Rank:        rank,
		FwdFirstOut: fwdFirstOut,
		FwdHead:     fwdHead,
		FwdWeight:   fwdWeight,
		BwdFirstOut: bwdFirstOut,
		BwdHead:     bwdHead,
		BwdWeight:   bwdWeight,
	}
}

// Priority queue implementation for contraction ordering.

type pqEntry struct {
	node     uint32
	priority int
	index    int
}

type priorityQueue []*pqEntry

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	entry := x.(*pqEntry)
	entry.index = len(*pq)
	*pq = append(*pq, entry)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*pq = old[:n-1]
	return entry
}
