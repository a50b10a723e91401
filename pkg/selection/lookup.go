package selection

import "hublabel/pkg/graph"

// Lookup is the finalized two-sided intersection oracle: per-vertex sorted
// out-labels and in-labels, plus the side table mapping selection id to
// center. Satisfies pathfinding.Oracle through FindDistance, which
// delegates to Distance.
type Lookup struct {
	centers []graph.Node
	srcSel  [][]CenterEntry
	tgtSel  [][]CenterEntry
}

// Distance intersects src_sel[s] and tgt_sel[t] via two-pointer merge over
// their selection-id order, returning the minimum summed distance over all
// matching selections, or UNREACHABLE if none match.
//
// The source contains a variant that returns the first match instead of
// the minimum; this implementation takes the minimum, the safe semantic
// per the open question it left unresolved (see DESIGN.md).
func (l *Lookup) Distance(s, t graph.Node) graph.Distance {
	src := l.srcSel[s]
	tgt := l.tgtSel[t]

	i, j := 0, 0
	best := graph.UNREACHABLE

	for i < len(src) && j < len(tgt) {
		switch {
		case src[i].SelectionID < tgt[j].SelectionID:
			i++
		case tgt[j].SelectionID < src[i].SelectionID:
			j++
		default:
			d := graph.AddDistance(src[i].Dist, tgt[j].Dist)
			if d < best {
				best = d
			}
			i++
			j++
		}
	}

	return best
}

// FindDistance satisfies pathfinding.Oracle.
func (l *Lookup) FindDistance(s, t graph.Node) graph.Distance {
	return l.Distance(s, t)
}

// Center returns the center vertex for a selection id.
func (l *Lookup) Center(selectionID int) graph.Node {
	return l.centers[selectionID]
}

// NewLookup reconstructs a Lookup from its three index tables, for use by
// pkg/labelio when deserializing a previously written label artifact.
func NewLookup(centers []graph.Node, srcSel, tgtSel [][]CenterEntry) *Lookup {
	return &Lookup{centers: centers, srcSel: srcSel, tgtSel: tgtSel}
}

// NumNodes returns the number of vertices the labels cover.
func (l *Lookup) NumNodes() int {
	return len(l.srcSel)
}

// NumSelections returns the number of entries in the selection-id ->
// center table, whether or not any label still references them.
func (l *Lookup) NumSelections() int {
	return len(l.centers)
}

// Centers returns the selection-id -> center table.
func (l *Lookup) Centers() []graph.Node {
	return l.centers
}

// OutLabel returns vertex n's out-label: the selections reachable from n,
// sorted by selection id.
func (l *Lookup) OutLabel(n graph.Node) []CenterEntry {
	return l.srcSel[n]
}

// InLabel returns vertex n's in-label: the selections that can reach n,
// sorted by selection id.
func (l *Lookup) InLabel(n graph.Node) []CenterEntry {
	return l.tgtSel[n]
}

// SizeDistributionSource returns a histogram of out-label sizes: how many
// vertices have a source-selection list of each length.
func (l *Lookup) SizeDistributionSource() map[int]int {
	return sizeDistribution(l.srcSel)
}

// SizeDistributionTarget returns the symmetric histogram for in-labels.
func (l *Lookup) SizeDistributionTarget() map[int]int {
	return sizeDistribution(l.tgtSel)
}

// AverageSelectionsPerNode is the combined out-label plus in-label size,
// averaged over every vertex, a rough density metric for the optimized index.
func (l *Lookup) AverageSelectionsPerNode() float64 {
	if len(l.srcSel) == 0 {
		return 0
	}
	total := 0
	for _, s := range l.srcSel {
		total += len(s)
	}
	for _, s := range l.tgtSel {
		total += len(s)
	}
	return float64(total) / float64(len(l.srcSel))
}

func sizeDistribution(sel [][]CenterEntry) map[int]int {
	dist := make(map[int]int)
	for _, s := range sel {
		dist[len(s)]++
	}
	return dist
}
