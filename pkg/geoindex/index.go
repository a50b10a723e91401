// Package geoindex maps query coordinates to the nearest graph vertex.
// Preprocessing and lookup both key on vertex coordinates rather than road
// segments, since hub-label distances are answered between vertices, not
// between arbitrary points along an edge — there is no snapping-ratio
// concept here, unlike route-geometry lookups.
package geoindex

import (
	"errors"

	"hublabel/pkg/geo"
	"hublabel/pkg/graph"

	"github.com/tidwall/rtree"
)

// ErrNoVertices is returned by New when the graph carries no coordinates.
var ErrNoVertices = errors.New("geoindex: graph has no node coordinates")

// ErrPointTooFar is returned when the nearest vertex is further than
// maxSearchRadiusMeters from the query point.
var ErrPointTooFar = errors.New("geoindex: no vertex within search radius")

const maxSearchRadiusMeters = 2_000.0

// Index answers nearest-vertex queries over a graph's node coordinates via
// an R-tree, expanding the search box until a candidate is found or the
// search radius is exhausted.
type Index struct {
	tree rtree.RTreeG[graph.Node]
	g    *graph.Graph
}

// New builds a spatial index over every node in g. Grounded on the
// teacher's NewSnapper: a one-time bulk-load pass over all vertices,
// but indexing point coordinates instead of edge bounding boxes, since
// this module snaps to vertices rather than to road segments.
func New(g *graph.Graph) (*Index, error) {
	if len(g.NodeLat) == 0 {
		return nil, ErrNoVertices
	}

	idx := &Index{g: g}
	for n := uint32(0); n < g.NumNodes; n++ {
		point := [2]float64{g.NodeLon[n], g.NodeLat[n]}
		idx.tree.Insert(point, point, n)
	}
	return idx, nil
}

// degreeStep is roughly 111m at the equator; it is the starting half-width
// of the search box, which doubles on every expansion round.
const degreeStep = 0.001

// Nearest returns the graph vertex closest to (lat, lng) by great-circle
// distance, searching an expanding bounding box around the query point
// until a candidate is found.
func (idx *Index) Nearest(lat, lng float64) (graph.Node, error) {
	var best graph.Node
	bestDist := maxSearchRadiusMeters + 1
	found := false

	// Grow the box until a round turns up at least one candidate, then do
	// one further doubling to pull in anything just outside the box that
	// is still closer than the best candidate found so far.
	settled := false
	for radius := degreeStep; radius <= degreeStep*2048; radius *= 2 {
		min := [2]float64{lng - radius, lat - radius}
		max := [2]float64{lng + radius, lat + radius}

		roundFound := false
		idx.tree.Search(min, max, func(_, _ [2]float64, data graph.Node) bool {
			d := geo.Haversine(lat, lng, idx.g.NodeLat[data], idx.g.NodeLon[data])
			roundFound = true
			if d < bestDist {
				bestDist = d
				best = data
				found = true
			}
			return true
		})

		if settled {
			break
		}
		if roundFound {
			settled = true
		}
	}

	if !found || bestDist > maxSearchRadiusMeters {
		return 0, ErrPointTooFar
	}
	return best, nil
}

// Len returns the number of indexed vertices.
func (idx *Index) Len() int {
	return idx.tree.Len()
}
