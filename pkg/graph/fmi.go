package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseFMI reads the FMI text graph format: a run of '#'-prefixed comment
// lines, a blank separator line, the node count, the edge count, one line
// per node (internal id, external id, lat, lon, elevation[, level]), and
// one line per edge (from, to, weight, speed, type[, shortcut pair]).
//
// Only the fields hublabel cares about (coordinates, edge endpoints and
// weight) are kept; speed/type/shortcut columns are accepted but ignored.
func ParseFMI(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var line string
	for sc.Scan() {
		line = strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		break
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fmi: read node count: %w", err)
	}
	numNodes, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: node count %q: %v", ErrMalformedFMI, line, err)
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing edge count", ErrMalformedFMI)
	}
	numEdges, err := strconv.ParseUint(strings.TrimSpace(sc.Text()), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: edge count: %v", ErrMalformedFMI, err)
	}

	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	for i := uint64(0); i < numNodes; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: expected %d node lines, got %d", ErrMalformedFMI, numNodes, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: node line %d has too few fields", ErrMalformedFMI, i)
		}
		lat, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d lat: %v", ErrMalformedFMI, i, err)
		}
		lon, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d lon: %v", ErrMalformedFMI, i, err)
		}
		nodeLat[i] = lat
		nodeLon[i] = lon
	}

	from := make([]uint32, 0, numEdges)
	to := make([]uint32, 0, numEdges)
	weight := make([]Distance, 0, numEdges)
	for i := uint64(0); i < numEdges; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: expected %d edge lines, got %d", ErrMalformedFMI, numEdges, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: edge line %d has too few fields", ErrMalformedFMI, i)
		}
		f, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d from: %v", ErrMalformedFMI, i, err)
		}
		t, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d to: %v", ErrMalformedFMI, i, err)
		}
		w, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d weight: %v", ErrMalformedFMI, i, err)
		}
		if uint32(f) >= uint32(numNodes) || uint32(t) >= uint32(numNodes) {
			return nil, fmt.Errorf("%w: edge %d references out-of-range node", ErrMalformedFMI, i)
		}
		from = append(from, uint32(f))
		to = append(to, uint32(t))
		weight = append(weight, w)
	}

	g := NewGraph(uint32(numNodes), from, to, weight)
	g.NodeLat = nodeLat
	g.NodeLon = nodeLon
	return g, nil
}

// WriteFMI writes g back out in FMI text format. Useful for round-tripping
// graphs built from OSM import through the same on-disk contract as
// hand-authored FMI fixtures.
func WriteFMI(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n%d\n", g.NumNodes, g.NumEdges); err != nil {
		return err
	}
	for i := uint32(0); i < g.NumNodes; i++ {
		lat, lon := 0.0, 0.0
		if len(g.NodeLat) == int(g.NumNodes) {
			lat, lon = g.NodeLat[i], g.NodeLon[i]
		}
		if _, err := fmt.Fprintf(bw, "%d %d %f %f 0\n", i, i, lat, lon); err != nil {
			return err
		}
	}
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.FwdEdgesFrom(u)
		for e := start; e < end; e++ {
			if _, err := fmt.Fprintf(bw, "%d %d %d 0 0\n", u, g.FwdHead[e], g.FwdWeight[e]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
