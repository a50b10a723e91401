package labelio

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"hublabel/pkg/graph"
	"hublabel/pkg/selection"
)

// WriteText writes the external label-file contract: one line per vertex
// with its out-label, one line with its in-label, each a comma-joined
// list of (selection_id, distance) tuples. Centers are written to a
// separate side file at path+"-centers". Grounded on
// original_source/src/selection/SelectionLookup.cpp's toFile and
// NodeSelection.cpp's toFile (node/tuple line format).
func WriteText(path string, lookup *selection.Lookup) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for n := 0; n < lookup.NumNodes(); n++ {
		fmt.Fprintf(w, "%d: %s\n", n, joinEntries(lookup.OutLabel(graph.Node(n))))
		fmt.Fprintf(w, "%d: %s\n", n, joinEntries(lookup.InLabel(graph.Node(n))))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	centersPath := path + "-centers"
	cf, err := os.Create(centersPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", centersPath, err)
	}
	defer cf.Close()

	cw := bufio.NewWriter(cf)
	for id, center := range lookup.Centers() {
		fmt.Fprintf(cw, "%d: %d\n", id, center)
	}
	return cw.Flush()
}

func joinEntries(entries []selection.CenterEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("(%d, %d)", e.SelectionID, e.Dist)
	}
	return strings.Join(parts, ",")
}
