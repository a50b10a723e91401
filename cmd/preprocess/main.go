// Command preprocess builds a two-sided hub-label distance index from a
// road graph: discover covering node selections, optimize them into
// per-vertex labels, and write the result to an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"hublabel/pkg/ch"
	"hublabel/pkg/graph"
	"hublabel/pkg/labelio"
	"hublabel/pkg/osmimport"
	"hublabel/pkg/pathfinding"
	"hublabel/pkg/selection"
)

func main() {
	graphPath := flag.String("g", "", "Path to FMI graph file (required unless --osm is given)")
	flag.StringVar(graphPath, "graph", "", "Path to FMI graph file (required unless --osm is given)")
	osmPath := flag.String("osm", "", "Path to OSM PBF file, as an alternative to -g/--graph")
	output := flag.String("o", ".", "Output directory (must exist)")
	flag.StringVar(output, "output", ".", "Output directory (must exist)")
	prune := flag.Int64("p", 0, "Prune distance P: pairs at distance P or less are left unindexed")
	flag.Int64Var(prune, "prune", 0, "Prune distance P: pairs at distance P or less are left unindexed")
	maxSelections := flag.Int("m", -1, "Per-vertex selection cap M (default unbounded)")
	flag.IntVar(maxSelections, "max-selections", -1, "Per-vertex selection cap M (default unbounded)")
	chGraphPath := flag.String("f", "", "Path to a CH-sorted FMI graph, enabling the external hub-labels oracle")
	flag.StringVar(chGraphPath, "fmi-graph", "", "Path to a CH-sorted FMI graph, enabling the external hub-labels oracle")
	workers := flag.Int("workers", 0, "All-pairs cache worker count (default: GOMAXPROCS)")
	seed := flag.Uint64("seed", 1, "Random seed for uncovered-pair sampling")
	flag.Parse()

	if *graphPath == "" && *osmPath == "" {
		fmt.Fprintln(os.Stderr, "preprocess: one of -g/--graph or --osm is required")
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()

	g, err := loadGraph(*graphPath, *osmPath)
	if err != nil {
		log.Fatalf("preprocess: %v", err)
	}
	log.Printf("Graph: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	if comp := graph.LargestComponent(g); len(comp) < int(g.NumNodes) {
		log.Printf("Warning: graph has %d nodes but largest component has only %d (%.1f%%)",
			g.NumNodes, len(comp), float64(len(comp))/float64(g.NumNodes)*100)
	}

	oracle, closeOracle, err := buildOracle(g, *chGraphPath, *workers)
	if err != nil {
		log.Fatalf("preprocess: build oracle: %v", err)
	}
	defer closeOracle()

	log.Println("Discovering node selections...")
	chooser := selection.NewMiddleChooser(g)
	driver := selection.NewDriver(g, oracle, chooser, *prune, *seed)
	selections := driver.Run()
	log.Printf("Discovered %d selections", len(selections))

	log.Println("Optimizing labels...")
	opt := selection.NewOptimizer(g, oracle, selections, *prune, *maxSelections)
	opt.Optimize()
	lookup := opt.Lookup()
	log.Printf("Average selections per vertex: %.2f", lookup.AverageSelectionsPerNode())

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatalf("preprocess: create output directory: %v", err)
	}

	graphBinPath := filepath.Join(*output, "graph.bin")
	if err := graph.WriteBinary(graphBinPath, g); err != nil {
		log.Fatalf("preprocess: write graph artifact: %v", err)
	}

	labelsBinPath := filepath.Join(*output, "labels.bin")
	if err := labelio.WriteLabels(labelsBinPath, lookup); err != nil {
		log.Fatalf("preprocess: write label artifact: %v", err)
	}

	labelsTxtPath := filepath.Join(*output, "labels.txt")
	if err := labelio.WriteText(labelsTxtPath, lookup); err != nil {
		log.Fatalf("preprocess: write label file: %v", err)
	}

	selectionsJSONPath := filepath.Join(*output, "selections.json")
	if err := labelio.WriteSelectionsJSON(selectionsJSONPath, selections, g); err != nil {
		log.Fatalf("preprocess: write selections dump: %v", err)
	}

	log.Printf("Done in %s. Output written to %s", time.Since(start).Round(time.Millisecond), *output)
}

// loadGraph builds the graph from either an FMI file or an OSM PBF file,
// whichever the operator supplied.
func loadGraph(fmiPath, osmPath string) (*graph.Graph, error) {
	if fmiPath != "" {
		f, err := os.Open(fmiPath)
		if err != nil {
			return nil, fmt.Errorf("open FMI graph: %w", err)
		}
		defer f.Close()
		return graph.ParseFMI(f)
	}

	f, err := os.Open(osmPath)
	if err != nil {
		return nil, fmt.Errorf("open OSM file: %w", err)
	}
	defer f.Close()

	result, err := osmimport.Parse(context.Background(), f)
	if err != nil {
		return nil, fmt.Errorf("parse OSM data: %w", err)
	}
	return osmimport.Build(result), nil
}

// buildOracle picks between the materialized all-pairs cache and the
// external CH-backed oracle, per -f/--fmi-graph.
func buildOracle(g *graph.Graph, chGraphPath string, workers int) (pathfinding.Oracle, func(), error) {
	if chGraphPath == "" {
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		log.Printf("Building all-pairs distance cache with %d workers...", workers)
		cache := pathfinding.BuildAllPairsCache(g, workers)
		return cache, cache.Release, nil
	}

	f, err := os.Open(chGraphPath)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open CH graph: %w", err)
	}
	defer f.Close()

	chGraph, err := graph.ParseFMI(f)
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse CH graph: %w", err)
	}

	log.Println("Contracting CH overlay...")
	overlay := ch.Contract(chGraph)
	return ch.NewOracle(overlay), func() {}, nil
}
