// Command query answers one-shot or batch distance queries against a
// preprocessed hub-label artifact, either by raw vertex id or by
// real-world coordinate.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"hublabel/pkg/geoindex"
	"hublabel/pkg/graph"
	"hublabel/pkg/labelio"
	"hublabel/pkg/pathfinding"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph artifact")
	labelsPath := flag.String("labels", "labels.bin", "Path to preprocessed label artifact")
	source := flag.Int64("s", -1, "Source vertex id")
	target := flag.Int64("t", -1, "Target vertex id")
	lat1 := flag.Float64("lat1", 0, "Source latitude (use with -lng1 instead of -s)")
	lng1 := flag.Float64("lng1", 0, "Source longitude (use with -lat1 instead of -s)")
	lat2 := flag.Float64("lat2", 0, "Target latitude (use with -lng2 instead of -t)")
	lng2 := flag.Float64("lng2", 0, "Target longitude (use with -lat2 instead of -t)")
	batchPath := flag.String("batch", "", "TSV file of \"source\\ttarget\" pairs (vertex ids) to answer in bulk")
	flag.Parse()

	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("query: load graph: %v", err)
	}

	lookup, err := labelio.ReadLabels(*labelsPath)
	if err != nil {
		log.Fatalf("query: load labels: %v", err)
	}

	var oracle pathfinding.Oracle = lookup

	if *batchPath != "" {
		if err := runBatch(*batchPath, oracle); err != nil {
			log.Fatalf("query: %v", err)
		}
		return
	}

	s, t, err := resolveEndpoints(g, *source, *target, *lat1, *lng1, *lat2, *lng2)
	if err != nil {
		log.Fatalf("query: %v", err)
	}

	printDistance(s, t, oracle.FindDistance(s, t))
}

// resolveEndpoints picks vertex ids either directly from -s/-t or by
// snapping -lat1/-lng1/-lat2/-lng2 to the nearest graph vertex.
func resolveEndpoints(g *graph.Graph, source, target int64, lat1, lng1, lat2, lng2 float64) (graph.Node, graph.Node, error) {
	if source >= 0 && target >= 0 {
		if uint32(source) >= g.NumNodes || uint32(target) >= g.NumNodes {
			return 0, 0, fmt.Errorf("vertex id out of range [0, %d)", g.NumNodes)
		}
		return graph.Node(source), graph.Node(target), nil
	}

	idx, err := geoindex.New(g)
	if err != nil {
		return 0, 0, fmt.Errorf("build spatial index: %w", err)
	}

	s, err := idx.Nearest(lat1, lng1)
	if err != nil {
		return 0, 0, fmt.Errorf("snap source coordinate: %w", err)
	}
	t, err := idx.Nearest(lat2, lng2)
	if err != nil {
		return 0, 0, fmt.Errorf("snap target coordinate: %w", err)
	}
	return s, t, nil
}

func printDistance(s, t graph.Node, dist graph.Distance) {
	if dist >= graph.UNREACHABLE {
		fmt.Printf("%d\t%d\tunreachable\n", s, t)
		return
	}
	fmt.Printf("%d\t%d\t%d\n", s, t, dist)
}

// runBatch reads "source\ttarget" vertex-id pairs, one per line, and
// prints "source\ttarget\tdistance" (or "unreachable") for each.
func runBatch(path string, oracle pathfinding.Oracle) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return fmt.Errorf("batch file line %d: expected 2 columns, got %d", line, len(fields))
		}
		s, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("batch file line %d: invalid source id: %w", line, err)
		}
		t, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("batch file line %d: invalid target id: %w", line, err)
		}
		dist := oracle.FindDistance(graph.Node(s), graph.Node(t))
		if dist >= graph.UNREACHABLE {
			fmt.Fprintf(w, "%d\t%d\tunreachable\n", s, t)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d\n", s, t, dist)
	}
	return scanner.Err()
}
