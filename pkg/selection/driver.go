package selection

import (
	"log"
	"math/rand/v2"

	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// Driver repeatedly samples uncovered (s,t) pairs and delegates to a
// Discoverer until the coverage matrix is fully resolved, collecting every
// non-empty selection produced along the way. Grounded on the original's
// FullNodeSelectionCalculator: same coverage-matrix-driven sampling loop,
// generalized to the row-sparse CoverageMatrix in this package instead of
// a dense vector<vector<bool>>.
type Driver struct {
	g          *graph.Graph
	discoverer *Discoverer
	cov        *CoverageMatrix
	rng        *rand.Rand
}

// NewDriver builds a driver over g using oracle for distance queries and
// chooser for center selection. prune is the distance threshold at or
// below which pairs are pre-covered. seed makes the sampling order reproducible.
func NewDriver(g *graph.Graph, oracle pathfinding.Oracle, chooser CenterChooser, prune graph.Distance, seed uint64) *Driver {
	cov := NewCoverageMatrix(g.NumNodes, oracle, prune)
	return &Driver{
		g:          g,
		discoverer: NewDiscoverer(g, oracle, chooser, cov),
		cov:        cov,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Run drives selection discovery to completion, returning every selection
// emitted.
func (d *Driver) Run() []NodeSelection {
	var selections []NodeSelection

	total := d.g.NumNodes
	doneBefore := d.countDoneRows()
	logInterval := total / 20
	if logInterval == 0 {
		logInterval = 1
	}

	for !d.cov.Done() {
		s, t := d.sampleUncoveredPair()

		sel, ok := d.discoverer.Discover(s, t)
		if !ok {
			d.cov.Mark(s, t)
			continue
		}

		if sel.Weight() == 0 {
			continue
		}

		d.cov.MarkSelection(sel)
		selections = append(selections, *sel)

		if doneNow := d.countDoneRows(); doneNow != doneBefore {
			doneBefore = doneNow
			if doneNow%logInterval == 0 {
				log.Printf("selection: %d/%d source rows fully covered, %d selections so far", doneNow, total, len(selections))
			}
		}
	}

	return selections
}

// sampleUncoveredPair picks source uniformly among non-empty rows, then
// picks target uniformly among that row's false entries.
func (d *Driver) sampleUncoveredPair() (graph.Node, graph.Node) {
	var candidates []graph.Node
	for s, row := range d.cov.rows {
		if row != nil {
			candidates = append(candidates, graph.Node(s))
		}
	}

	s := candidates[d.rng.IntN(len(candidates))]

	row := d.cov.rows[s]
	var targets []graph.Node
	for t, covered := range row {
		if !covered {
			targets = append(targets, graph.Node(t))
		}
	}

	t := targets[d.rng.IntN(len(targets))]
	return s, t
}

func (d *Driver) countDoneRows() uint32 {
	var n uint32
	for _, row := range d.cov.rows {
		if row == nil {
			n++
		}
	}
	return n
}
