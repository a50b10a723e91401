package graph

import (
	"strings"
	"testing"
)

const sampleFMI = `# comment line
# another comment

4
5
0 0 1.0 103.0 0
1 1 1.1 103.0 0
2 2 1.0 103.1 0
3 3 1.1 103.1 0
0 1 100 0 0
1 2 200 0 0
2 3 150 0 0
3 0 300 0 0
0 2 500 0 0
`

func TestParseFMI(t *testing.T) {
	g, err := ParseFMI(strings.NewReader(sampleFMI))
	if err != nil {
		t.Fatalf("ParseFMI: %v", err)
	}
	if g.NumNodes != 4 {
		t.Fatalf("NumNodes = %d, want 4", g.NumNodes)
	}
	if g.NumEdges != 5 {
		t.Fatalf("NumEdges = %d, want 5", g.NumEdges)
	}
	if g.NodeLat[1] != 1.1 || g.NodeLon[1] != 103.0 {
		t.Errorf("node 1 coords = (%f,%f), want (1.1,103.0)", g.NodeLat[1], g.NodeLon[1])
	}
	if !g.FwdEdgeExists(0, 1) {
		t.Error("expected edge 0->1")
	}
	if !g.FwdEdgeExists(0, 2) {
		t.Error("expected edge 0->2")
	}
	if g.FwdEdgeExists(1, 0) {
		t.Error("did not expect edge 1->0")
	}
	if !g.BwdEdgeExists(1, 0) {
		t.Error("expected backward edge for 0->1 reachable from 1")
	}
}

func TestParseFMIMalformed(t *testing.T) {
	_, err := ParseFMI(strings.NewReader("not a number\n"))
	if err == nil {
		t.Fatal("expected error for malformed node count")
	}
}

func TestParseFMIEmpty(t *testing.T) {
	g, err := ParseFMI(strings.NewReader("0\n0\n"))
	if err != nil {
		t.Fatalf("ParseFMI: %v", err)
	}
	if g.NumNodes != 0 || g.NumEdges != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", g.NumNodes, g.NumEdges)
	}
}

func TestWriteFMIRoundTrip(t *testing.T) {
	g, err := ParseFMI(strings.NewReader(sampleFMI))
	if err != nil {
		t.Fatalf("ParseFMI: %v", err)
	}
	var buf strings.Builder
	if err := WriteFMI(&buf, g); err != nil {
		t.Fatalf("WriteFMI: %v", err)
	}
	g2, err := ParseFMI(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ParseFMI round trip: %v", err)
	}
	if g2.NumNodes != g.NumNodes || g2.NumEdges != g.NumEdges {
		t.Errorf("round trip mismatch: got (%d,%d), want (%d,%d)", g2.NumNodes, g2.NumEdges, g.NumNodes, g.NumEdges)
	}
}
