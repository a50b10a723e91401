package labelio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hublabel/pkg/graph"
	"hublabel/pkg/selection"
)

func buildTestLookup() *selection.Lookup {
	centers := []graph.Node{2, 2}
	srcSel := [][]selection.CenterEntry{
		{{SelectionID: 0, Dist: 1}},
		{{SelectionID: 0, Dist: 0}, {SelectionID: 1, Dist: 0}},
		nil,
		{{SelectionID: 1, Dist: 1}},
	}
	tgtSel := [][]selection.CenterEntry{
		nil,
		nil,
		nil,
		{{SelectionID: 0, Dist: 2}},
	}
	return selection.NewLookup(centers, srcSel, tgtSel)
}

func TestWriteReadLabelsRoundTrip(t *testing.T) {
	lookup := buildTestLookup()
	path := filepath.Join(t.TempDir(), "labels.bin")

	if err := WriteLabels(path, lookup); err != nil {
		t.Fatalf("WriteLabels() error = %v", err)
	}

	got, err := ReadLabels(path)
	if err != nil {
		t.Fatalf("ReadLabels() error = %v", err)
	}

	if got.NumNodes() != lookup.NumNodes() {
		t.Fatalf("NumNodes = %d, want %d", got.NumNodes(), lookup.NumNodes())
	}
	if got.NumSelections() != lookup.NumSelections() {
		t.Fatalf("NumSelections = %d, want %d", got.NumSelections(), lookup.NumSelections())
	}
	for n := graph.Node(0); n < graph.Node(lookup.NumNodes()); n++ {
		if got.Distance(0, n) != lookup.Distance(0, n) {
			t.Errorf("Distance(0,%d) = %d, want %d", n, got.Distance(0, n), lookup.Distance(0, n))
		}
	}
	if got.Distance(0, 3) != lookup.Distance(0, 3) {
		t.Errorf("Distance(0,3) = %d, want %d", got.Distance(0, 3), lookup.Distance(0, 3))
	}
}

func TestReadLabelsRejectsCorruptFile(t *testing.T) {
	lookup := buildTestLookup()
	path := filepath.Join(t.TempDir(), "labels.bin")
	if err := WriteLabels(path, lookup); err != nil {
		t.Fatalf("WriteLabels() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := ReadLabels(path); !errors.Is(err, ErrCRCMismatch) {
		t.Errorf("ReadLabels() error = %v, want ErrCRCMismatch", err)
	}
}

func TestWriteText(t *testing.T) {
	lookup := buildTestLookup()
	path := filepath.Join(t.TempDir(), "labels.txt")

	if err := WriteText(path, lookup); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("label file not created: %v", err)
	}
	if _, err := os.Stat(path + "-centers"); err != nil {
		t.Errorf("centers side file not created: %v", err)
	}
}

func TestWriteSelectionsJSON(t *testing.T) {
	from := []uint32{0, 1, 2}
	to := []uint32{1, 2, 3}
	weight := []graph.Distance{1, 1, 1}
	g := graph.NewGraph(4, from, to, weight)
	g.NodeLat = []float64{1, 2, 3, 4}
	g.NodeLon = []float64{10, 20, 30, 40}

	selections := []selection.NodeSelection{
		{
			SourcePatch: selection.Patch{{Node: 0, Dist: 2}},
			TargetPatch: selection.Patch{{Node: 3, Dist: 1}},
			Center:      2,
		},
	}

	path := filepath.Join(t.TempDir(), "selections.json")
	if err := WriteSelectionsJSON(path, selections, g); err != nil {
		t.Fatalf("WriteSelectionsJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Errorf("wrote empty JSON dump")
	}
}
