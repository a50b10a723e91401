package geoindex

import (
	"testing"

	"hublabel/pkg/graph"
)

func buildIndexTestGraph() *graph.Graph {
	from := []uint32{0, 1}
	to := []uint32{1, 2}
	weight := []graph.Distance{1, 1}
	g := graph.NewGraph(3, from, to, weight)
	g.NodeLat = []float64{52.5200, 52.5300, 52.5400}
	g.NodeLon = []float64{13.4050, 13.4150, 13.4250}
	return g
}

func TestNewRejectsGraphWithoutCoordinates(t *testing.T) {
	from := []uint32{0}
	to := []uint32{1}
	weight := []graph.Distance{1}
	g := graph.NewGraph(2, from, to, weight)

	if _, err := New(g); err != ErrNoVertices {
		t.Errorf("New() error = %v, want ErrNoVertices", err)
	}
}

func TestNearestFindsClosestVertex(t *testing.T) {
	g := buildIndexTestGraph()
	idx, err := New(g)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := idx.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	n, err := idx.Nearest(52.5201, 13.4051)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Nearest() = %d, want 0", n)
	}

	n, err = idx.Nearest(52.5399, 13.4249)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Nearest() = %d, want 2", n)
	}
}

func TestNearestTooFar(t *testing.T) {
	g := buildIndexTestGraph()
	idx, err := New(g)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Far enough away (several thousand km) that no vertex is within range.
	if _, err := idx.Nearest(10.0, 10.0); err != ErrPointTooFar {
		t.Errorf("Nearest() error = %v, want ErrPointTooFar", err)
	}
}
