// Command server loads a preprocessed hub-label artifact and answers
// distance queries over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"hublabel/pkg/api"
	"hublabel/pkg/graph"
	"hublabel/pkg/labelio"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph artifact")
	labelsPath := flag.String("labels", "labels.bin", "Path to preprocessed label artifact")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading graph from %s...", *graphPath)
	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	log.Printf("Loading labels from %s...", *labelsPath)
	lookup, err := labelio.ReadLabels(*labelsPath)
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}
	log.Printf("Loaded: %d selections, %.2f avg selections/node",
		lookup.NumSelections(), lookup.AverageSelectionsPerNode())

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes:                 g.NumNodes,
		NumSelections:            lookup.NumSelections(),
		AverageSelectionsPerNode: lookup.AverageSelectionsPerNode(),
	}

	handlers := api.NewHandlers(lookup, g.NumNodes, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
