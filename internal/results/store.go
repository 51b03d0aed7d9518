// Package results persists VMAF analysis output as a tab-separated file.
// The three-column layout (FileSpec, VMAF-Value, Bitrate) is fixed: it is
// what the external efficiency-plotting tooling consumes.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Record is one scored file.
type Record struct {
	FileSpec    string  // Compressed file name (with parameter suffix).
	VMAF        float64 // Perceptual score, 0-100.
	BitrateKbps float64 // Video bitrate of the compressed file.
}

var header = []string{"FileSpec", "VMAF-Value", "Bitrate"}

// Write stores recs at path, creating parent directories. The file is
// rewritten whole each time; results are cheap to regenerate and partial
// appends would corrupt downstream parsing.
func Write(path string, recs []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := newTSVWriter(f)
	if err := w.writeRow(header); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.FileSpec,
			strconv.FormatFloat(r.VMAF, 'f', 2, 64),
			strconv.FormatFloat(r.BitrateKbps, 'f', 2, 64),
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.flush()
}

// Read loads a results file written by [Write]. The header row is
// validated and skipped.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readTSV(f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results file %s: empty", path)
	}
	if len(rows[0]) != 3 || rows[0][0] != header[0] {
		return nil, fmt.Errorf("results file %s: unexpected header %v", path, rows[0])
	}

	recs := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 3 {
			return nil, fmt.Errorf("results file %s: row %d has %d columns", path, i+2, len(row))
		}
		vmaf, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("results file %s: row %d VMAF: %w", path, i+2, err)
		}
		kbps, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("results file %s: row %d bitrate: %w", path, i+2, err)
		}
		recs = append(recs, Record{FileSpec: row[0], VMAF: vmaf, BitrateKbps: kbps})
	}
	return recs, nil
}
