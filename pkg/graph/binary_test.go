package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"hublabel/pkg/graph"
)

func buildTestGraph() *graph.Graph {
	g := graph.NewGraph(4,
		[]uint32{0, 1, 1, 2, 0, 3},
		[]uint32{1, 0, 2, 1, 3, 0},
		[]graph.Distance{100, 100, 200, 200, 300, 300},
	)
	g.NodeLat = []float64{1.0, 1.1, 1.2, 1.3}
	g.NodeLon = []float64{103.0, 103.1, 103.2, 103.3}
	return g
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestGraph()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes != original.NumNodes {
		t.Errorf("NumNodes: got %d, want %d", loaded.NumNodes, original.NumNodes)
	}

	for i := uint32(0); i < original.NumNodes; i++ {
		if loaded.NodeLat[i] != original.NodeLat[i] {
			t.Errorf("NodeLat[%d]: got %f, want %f", i, loaded.NodeLat[i], original.NodeLat[i])
		}
	}

	if len(loaded.FwdHead) != len(original.FwdHead) {
		t.Fatalf("FwdHead length: got %d, want %d", len(loaded.FwdHead), len(original.FwdHead))
	}
	for i := range original.FwdHead {
		if loaded.FwdHead[i] != original.FwdHead[i] {
			t.Errorf("FwdHead[%d]: got %d, want %d", i, loaded.FwdHead[i], original.FwdHead[i])
		}
		if loaded.FwdWeight[i] != original.FwdWeight[i] {
			t.Errorf("FwdWeight[%d]: got %d, want %d", i, loaded.FwdWeight[i], original.FwdWeight[i])
		}
	}

	if len(loaded.BwdHead) != len(original.BwdHead) {
		t.Fatalf("BwdHead length: got %d, want %d", len(loaded.BwdHead), len(original.BwdHead))
	}
}

func TestBinaryInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.graph.bin")
	os.WriteFile(path, []byte("NOT_HUBLABEL_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for invalid magic bytes")
	}
}

func TestBinaryTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.graph.bin")
	os.WriteFile(path, []byte("HUBLABEL"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
}
