package selection

import (
	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// CoverageMatrix is the conceptual N x N boolean "pair resolved" record,
// stored row-sparsely: a nil row means every pair in that row is covered.
// Rows are compacted to nil as soon as they go all-true, which is both a
// memory optimization and the signal the driver uses to skip sources with
// nothing left to do.
type CoverageMatrix struct {
	rows [][]bool
	n    uint32
}

// NewCoverageMatrix initializes C[s][t] = true for s == t, find_distance(s,t)
// <= prune, or find_distance(s,t) == UNREACHABLE; all-true rows are
// compacted to empty immediately.
func NewCoverageMatrix(n uint32, oracle pathfinding.Oracle, prune graph.Distance) *CoverageMatrix {
	cm := &CoverageMatrix{rows: make([][]bool, n), n: n}

	for s := graph.Node(0); s < graph.Node(n); s++ {
		row := make([]bool, n)
		allTrue := true
		for t := graph.Node(0); t < graph.Node(n); t++ {
			covered := s == t
			if !covered {
				d := oracle.FindDistance(s, t)
				covered = d == graph.UNREACHABLE || d <= prune
			}
			row[t] = covered
			if !covered {
				allTrue = false
			}
		}
		if !allTrue {
			cm.rows[s] = row
		}
	}

	return cm
}

// Done reports whether every row is empty (fully covered).
func (cm *CoverageMatrix) Done() bool {
	for _, row := range cm.rows {
		if row != nil {
			return false
		}
	}
	return true
}

// IsCovered reports C[s][t], treating a compacted (nil) row as all-true.
func (cm *CoverageMatrix) IsCovered(s, t graph.Node) bool {
	row := cm.rows[s]
	if row == nil {
		return true
	}
	return row[t]
}

// Mark sets C[s][t] = true and compacts row s if it has become all-true.
func (cm *CoverageMatrix) Mark(s, t graph.Node) {
	row := cm.rows[s]
	if row == nil {
		return
	}
	row[t] = true
	cm.compactIfDone(s)
}

// MarkSelection marks every (u,v) in the selection's source x target
// product as covered, compacting each affected source row.
func (cm *CoverageMatrix) MarkSelection(sel *NodeSelection) {
	for _, u := range sel.SourcePatch {
		row := cm.rows[u.Node]
		if row == nil {
			continue
		}
		for _, v := range sel.TargetPatch {
			row[v.Node] = true
		}
		cm.compactIfDone(u.Node)
	}
}

func (cm *CoverageMatrix) compactIfDone(s graph.Node) {
	row := cm.rows[s]
	for _, covered := range row {
		if !covered {
			return
		}
	}
	cm.rows[s] = nil
}
