package labelio

import (
	"encoding/json"
	"fmt"
	"os"

	"hublabel/pkg/graph"
	"hublabel/pkg/selection"
)

// selectionJSON is one selection's diagnostic dump: patches as
// [node, distance] pairs and, when the graph carries coordinates, the
// corresponding [lat, lng] pairs for plotting. Grounded on
// original_source/include/selection/NodeSelection.hpp's toJson/toFileAsJson.
type selectionJSON struct {
	Sources      [][2]int64   `json:"sources"`
	Targets      [][2]int64   `json:"targets"`
	SourceCoords [][2]float64 `json:"source_coords,omitempty"`
	TargetCoords [][2]float64 `json:"target_coords,omitempty"`
	Center       graph.Node   `json:"center"`
	CenterCoords [2]float64   `json:"center_coords,omitempty"`
}

// WriteSelectionsJSON writes the diagnostic per-selection JSON dump: an
// array of selectionJSON objects, one per discovered NodeSelection.
func WriteSelectionsJSON(path string, selections []selection.NodeSelection, g *graph.Graph) error {
	hasCoords := len(g.NodeLat) == int(g.NumNodes) && g.NumNodes > 0

	dump := make([]selectionJSON, len(selections))
	for i, sel := range selections {
		entry := selectionJSON{
			Sources: make([][2]int64, len(sel.SourcePatch)),
			Targets: make([][2]int64, len(sel.TargetPatch)),
			Center:  sel.Center,
		}
		for j, e := range sel.SourcePatch {
			entry.Sources[j] = [2]int64{int64(e.Node), int64(e.Dist)}
		}
		for j, e := range sel.TargetPatch {
			entry.Targets[j] = [2]int64{int64(e.Node), int64(e.Dist)}
		}
		if hasCoords {
			entry.SourceCoords = make([][2]float64, len(sel.SourcePatch))
			for j, e := range sel.SourcePatch {
				entry.SourceCoords[j] = [2]float64{g.NodeLat[e.Node], g.NodeLon[e.Node]}
			}
			entry.TargetCoords = make([][2]float64, len(sel.TargetPatch))
			for j, e := range sel.TargetPatch {
				entry.TargetCoords[j] = [2]float64{g.NodeLat[e.Node], g.NodeLon[e.Node]}
			}
			entry.CenterCoords = [2]float64{g.NodeLat[sel.Center], g.NodeLon[sel.Center]}
		}
		dump[i] = entry
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
