package results

import (
	"encoding/csv"
	"io"
)

// Thin wrappers around encoding/csv configured for tab separation.

type tsvWriter struct {
	w *csv.Writer
}

func newTSVWriter(dst io.Writer) *tsvWriter {
	w := csv.NewWriter(dst)
	w.Comma = '\t'
	return &tsvWriter{w: w}
}

func (t *tsvWriter) writeRow(row []string) error { return t.w.Write(row) }

func (t *tsvWriter) flush() error {
	t.w.Flush()
	return t.w.Error()
}

func readTSV(src io.Reader) ([][]string, error) {
	r := csv.NewReader(src)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
