package selection

import (
	"testing"

	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// buildOptimizerLineGraph is the line 0-1-2-3, weight 1 each edge.
func buildOptimizerLineGraph() *graph.Graph {
	from := []uint32{0, 1, 2}
	to := []uint32{1, 2, 3}
	weight := []graph.Distance{1, 1, 1}
	return graph.NewGraph(4, from, to, weight)
}

// Two hand-built selections, both centered at 1 and so not self-centered
// for node 0, jointly needed to cover both (0,2) and (0,3).
func buildOptimizerSelections() []NodeSelection {
	return []NodeSelection{
		{
			SourcePatch: Patch{{Node: 0, Dist: 1}},
			TargetPatch: Patch{{Node: 2, Dist: 1}},
			Center:      1,
		},
		{
			SourcePatch: Patch{{Node: 0, Dist: 1}},
			TargetPatch: Patch{{Node: 3, Dist: 2}},
			Center:      1,
		},
	}
}

func TestOptimizeOutUncappedCoversAllRequired(t *testing.T) {
	g := buildOptimizerLineGraph()
	cache := pathfinding.BuildAllPairsCache(g, 1)
	selections := buildOptimizerSelections()

	opt := NewOptimizer(g, cache, selections, 0, -1)
	opt.Optimize()
	lookup := opt.Lookup()

	if got := lookup.Distance(0, 2); got != 2 {
		t.Errorf("Distance(0,2) = %d, want 2", got)
	}
	if got := lookup.Distance(0, 3); got != 3 {
		t.Errorf("Distance(0,3) = %d, want 3", got)
	}
	if len(opt.srcSel[0]) != 2 {
		t.Errorf("srcSel[0] has %d entries, want 2 (both selections needed for full coverage)", len(opt.srcSel[0]))
	}
}

func TestOptimizeOutCapLimitsNonSelfCentered(t *testing.T) {
	g := buildOptimizerLineGraph()
	cache := pathfinding.BuildAllPairsCache(g, 1)
	selections := buildOptimizerSelections()

	opt := NewOptimizer(g, cache, selections, 0, 1)
	opt.Optimize()

	if got := countNonSelfCentered(opt.srcSel[0], selections, 0); got > 1 {
		t.Errorf("node 0 has %d non-self-centered out-selections, want <= 1", got)
	}
}

func TestOptimizeOutDropsOwnSelfCenteredSelection(t *testing.T) {
	g := buildOptimizerLineGraph()
	cache := pathfinding.BuildAllPairsCache(g, 1)

	// A selection centered at the very vertex being optimized contributes
	// nothing to that vertex's out-label: dist(1,1) is trivially zero and
	// never needs a lookup, so it is dropped rather than elected.
	selections := []NodeSelection{
		{
			SourcePatch: Patch{{Node: 1, Dist: 0}},
			TargetPatch: Patch{{Node: 2, Dist: 1}, {Node: 3, Dist: 2}},
			Center:      1,
		},
	}

	opt := NewOptimizer(g, cache, selections, 0, 0)
	opt.Optimize()

	if len(opt.srcSel[1]) != 0 {
		t.Errorf("srcSel[1] has %d entries, want 0 (self-centered selection carries no information for its own vertex)", len(opt.srcSel[1]))
	}
}

func TestOptimizeInSymmetricToOut(t *testing.T) {
	g := buildOptimizerLineGraph()
	cache := pathfinding.BuildAllPairsCache(g, 1)

	selections := []NodeSelection{
		{
			SourcePatch: Patch{{Node: 0, Dist: 2}},
			TargetPatch: Patch{{Node: 3, Dist: 1}},
			Center:      2,
		},
	}

	opt := NewOptimizer(g, cache, selections, 0, -1)
	opt.Optimize()
	lookup := opt.Lookup()

	if got := lookup.Distance(0, 3); got != 3 {
		t.Errorf("Distance(0,3) = %d, want 3", got)
	}
	if len(opt.tgtSel[3]) != 1 {
		t.Errorf("tgtSel[3] has %d entries, want 1", len(opt.tgtSel[3]))
	}
}
