package pathfinding

import "hublabel/pkg/graph"

// Path is a sequence of nodes from a source to a target, in traversal
// order, together with its total distance.
type Path struct {
	Nodes    []uint32
	Distance graph.Distance
}

// Source returns the first node of the path.
func (p Path) Source() uint32 {
	return p.Nodes[0]
}

// Target returns the last node of the path.
func (p Path) Target() uint32 {
	return p.Nodes[len(p.Nodes)-1]
}

// Length returns the number of edges in the path.
func (p Path) Length() int {
	return len(p.Nodes) - 1
}

// MiddleNode returns the node at the floor of the path's midpoint index.
// This is the authoritative center choice used by pkg/selection's default
// center chooser.
func (p Path) MiddleNode() uint32 {
	return p.Nodes[len(p.Nodes)/2]
}
