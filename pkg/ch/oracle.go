package ch

import "hublabel/pkg/graph"

// Oracle answers point-to-point distance queries against a contracted
// Overlay via bidirectional search over the upward graphs. It holds
// per-query scratch state and is not safe for concurrent use — callers
// that need concurrency should give each goroutine its own Oracle over
// the same shared Overlay.
type Oracle struct {
	ov *Overlay

	distFwd []graph.Distance
	distBwd []graph.Distance
	touched []uint32
	fwdPQ   minHeap
	bwdPQ   minHeap
}

// NewOracle creates a distance query engine over a contracted overlay.
func NewOracle(ov *Overlay) *Oracle {
	distFwd := make([]graph.Distance, ov.NumNodes)
	distBwd := make([]graph.Distance, ov.NumNodes)
	for i := range distFwd {
		distFwd[i] = graph.UNREACHABLE
		distBwd[i] = graph.UNREACHABLE
	}
	return &Oracle{
		ov:      ov,
		distFwd: distFwd,
		distBwd: distBwd,
		touched: make([]uint32, 0, 1024),
	}
}

// FindDistance returns the shortest-path distance between source and
// target, or graph.UNREACHABLE if none exists. Satisfies
// hublabel/pkg/pathfinding.Oracle. Route reconstruction is intentionally
// not supported — hublabel answers distances, not turn-by-turn routes.
func (o *Oracle) FindDistance(source, target graph.Node) graph.Distance {
	o.reset()

	o.touchFwd(source, 0)
	o.fwdPQ.Push(source, 0)
	o.touchBwd(target, 0)
	o.bwdPQ.Push(target, 0)

	mu := graph.UNREACHABLE

	for o.fwdPQ.Len() > 0 || o.bwdPQ.Len() > 0 {
		if o.fwdPQ.Len() > 0 && o.fwdPQ.Peek().Dist < mu {
			item := o.fwdPQ.Pop()
			u, d := item.Node, item.Dist

			if d > o.distFwd[u] {
				goto backward // stale entry
			}

			if o.distBwd[u] < graph.UNREACHABLE {
				if candidate := graph.AddDistance(d, o.distBwd[u]); candidate < mu {
					mu = candidate
				}
			}

			start, end := o.ov.FwdFirstOut[u], o.ov.FwdFirstOut[u+1]
			for e := start; e < end; e++ {
				v := o.ov.FwdHead[e]
				newDist := graph.AddDistance(d, o.ov.FwdWeight[e])
				if newDist < o.distFwd[v] {
					o.touchFwd(v, newDist)
					o.fwdPQ.Push(v, newDist)
				}
			}
		}

	backward:
		if o.bwdPQ.Len() > 0 && o.bwdPQ.Peek().Dist < mu {
			item := o.bwdPQ.Pop()
			u, d := item.Node, item.Dist

			if d > o.distBwd[u] {
				continue // stale entry
			}

			if o.distFwd[u] < graph.UNREACHABLE {
				if candidate := graph.AddDistance(o.distFwd[u], d); candidate < mu {
					mu = candidate
				}
			}

			start, end := o.ov.BwdFirstOut[u], o.ov.BwdFirstOut[u+1]
			for e := start; e < end; e++ {
				v := o.ov.BwdHead[e]
				newDist := graph.AddDistance(d, o.ov.BwdWeight[e])
				if newDist < o.distBwd[v] {
					o.touchBwd(v, newDist)
					o.bwdPQ.Push(v, newDist)
				}
			}
		}

		fwdPeek, bwdPeek := graph.UNREACHABLE, graph.UNREACHABLE
		if o.fwdPQ.Len() > 0 {
			fwdPeek = o.fwdPQ.Peek().Dist
		}
		if o.bwdPQ.Len() > 0 {
			bwdPeek = o.bwdPQ.Peek().Dist
		}
		if fwdPeek >= mu && bwdPeek >= mu {
			break
		}
	}

	return mu
}

func (o *Oracle) touchFwd(n uint32, dist graph.Distance) {
	if o.distFwd[n] == graph.UNREACHABLE && o.distBwd[n] == graph.UNREACHABLE {
		o.touched = append(o.touched, n)
	}
	o.distFwd[n] = dist
}

func (o *Oracle) touchBwd(n uint32, dist graph.Distance) {
	if o.distFwd[n] == graph.UNREACHABLE && o.distBwd[n] == graph.UNREACHABLE {
		o.touched = append(o.touched, n)
	}
	o.distBwd[n] = dist
}

func (o *Oracle) reset() {
	for _, n := range o.touched {
		o.distFwd[n] = graph.UNREACHABLE
		o.distBwd[n] = graph.UNREACHABLE
	}
	o.touched = o.touched[:0]
	o.fwdPQ.Reset()
	o.bwdPQ.Reset()
}
