// Package labelio serializes and deserializes the optimized label index
// (pkg/selection.Lookup) to the artifact formats cmd/preprocess, cmd/query,
// and cmd/server exchange: a binary codec for fast reload, a text format
// matching the external label-file contract, and a diagnostic JSON dump.
package labelio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"hublabel/pkg/graph"
	"hublabel/pkg/selection"
)

const (
	labelMagic   = "HLLABELS"
	labelVersion = uint32(1)
)

// ErrCRCMismatch is returned by ReadLabels when the trailing checksum
// doesn't match the decoded payload.
var ErrCRCMismatch = fmt.Errorf("labelio: CRC32 mismatch")

type labelHeader struct {
	Magic         [8]byte
	Version       uint32
	NumNodes      uint32
	NumSelections uint32
	NumOutEntries uint32
	NumInEntries  uint32
}

// WriteLabels serializes lookup to path: magic+version header, CSR-style
// out-label and in-label tables, a centers table, and a CRC32 trailer,
// written atomically via a temp-file-then-rename, grounded on
// pkg/graph/binary.go's codec for the CSR graph artifact.
func WriteLabels(path string, lookup *selection.Lookup) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	numNodes := lookup.NumNodes()
	outOffsets, outIDs, outDists := flattenLabels(lookup, numNodes, lookup.OutLabel)
	inOffsets, inIDs, inDists := flattenLabels(lookup, numNodes, lookup.InLabel)

	hdr := labelHeader{
		Version:       labelVersion,
		NumNodes:      uint32(numNodes),
		NumSelections: uint32(lookup.NumSelections()),
		NumOutEntries: uint32(len(outIDs)),
		NumInEntries:  uint32(len(inIDs)),
	}
	copy(hdr.Magic[:], labelMagic)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	centers := make([]uint32, lookup.NumSelections())
	for i, c := range lookup.Centers() {
		centers[i] = c
	}
	if err := writeUint32Slice(cw, centers); err != nil {
		return fmt.Errorf("write centers: %w", err)
	}

	for _, s := range []struct {
		name    string
		offsets []uint32
		ids     []uint32
		dists   []int64
	}{
		{"out", outOffsets, outIDs, outDists},
		{"in", inOffsets, inIDs, inDists},
	} {
		if err := writeUint32Slice(cw, s.offsets); err != nil {
			return fmt.Errorf("write %s offsets: %w", s.name, err)
		}
		if err := writeUint32Slice(cw, s.ids); err != nil {
			return fmt.Errorf("write %s selection ids: %w", s.name, err)
		}
		if err := writeInt64Slice(cw, s.dists); err != nil {
			return fmt.Errorf("write %s distances: %w", s.name, err)
		}
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadLabels deserializes a Lookup previously written by WriteLabels.
func ReadLabels(path string) (*selection.Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr labelHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != labelMagic {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != labelVersion {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}

	centersFlat, err := readUint32Slice(cr, int(hdr.NumSelections))
	if err != nil {
		return nil, fmt.Errorf("read centers: %w", err)
	}
	centers := make([]graph.Node, len(centersFlat))
	copy(centers, centersFlat)

	outSel, err := readLabelTable(cr, int(hdr.NumNodes), int(hdr.NumOutEntries))
	if err != nil {
		return nil, fmt.Errorf("read out-labels: %w", err)
	}
	inSel, err := readLabelTable(cr, int(hdr.NumNodes), int(hdr.NumInEntries))
	if err != nil {
		return nil, fmt.Errorf("read in-labels: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("%w: stored=%08x computed=%08x", ErrCRCMismatch, storedCRC, expectedCRC)
	}

	return selection.NewLookup(centers, outSel, inSel), nil
}

// flattenLabels builds the CSR-style (offsets, ids, dists) triple for
// every node's label, via the supplied accessor (OutLabel or InLabel).
func flattenLabels(lookup *selection.Lookup, numNodes int, label func(graph.Node) []selection.CenterEntry) ([]uint32, []uint32, []int64) {
	offsets := make([]uint32, numNodes+1)
	var ids []uint32
	var dists []int64

	for n := 0; n < numNodes; n++ {
		entries := label(graph.Node(n))
		for _, e := range entries {
			ids = append(ids, uint32(e.SelectionID))
			dists = append(dists, e.Dist)
		}
		offsets[n+1] = uint32(len(ids))
	}
	return offsets, ids, dists
}

// readLabelTable decodes a CSR-style label table into per-node slices.
func readLabelTable(r io.Reader, numNodes, numEntries int) ([][]selection.CenterEntry, error) {
	offsets, err := readUint32Slice(r, numNodes+1)
	if err != nil {
		return nil, fmt.Errorf("read offsets: %w", err)
	}
	ids, err := readUint32Slice(r, numEntries)
	if err != nil {
		return nil, fmt.Errorf("read selection ids: %w", err)
	}
	dists, err := readInt64Slice(r, numEntries)
	if err != nil {
		return nil, fmt.Errorf("read distances: %w", err)
	}

	table := make([][]selection.CenterEntry, numNodes)
	for n := 0; n < numNodes; n++ {
		start, end := offsets[n], offsets[n+1]
		if start == end {
			continue
		}
		entries := make([]selection.CenterEntry, end-start)
		for i := start; i < end; i++ {
			entries[i-start] = selection.CenterEntry{SelectionID: int(ids[i]), Dist: dists[i]}
		}
		table[n] = entries
	}
	return table, nil
}

// Zero-copy I/O helpers, mirroring pkg/graph/binary.go's.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt64Slice(w io.Writer, s []int64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readInt64Slice(r io.Reader, n int) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

type crc32Writer struct {
	w    io.Writer
	hash hash32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash hash32
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}

type hash32 interface {
	Write([]byte) (int, error)
	Sum32() uint32
}
