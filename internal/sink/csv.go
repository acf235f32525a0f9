package sink

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
)

// CSVSink writes one row per chunk under a single Content column.
type CSVSink struct{}

func (CSVSink) Format() Format      { return FormatCSV }
func (CSVSink) Extension() string   { return ".csv" }
func (CSVSink) ContentType() string { return "text/csv; charset=utf-8" }

func (s CSVSink) WriteFile(ctx context.Context, path string, b Batch) error {
	return encodeFile(ctx, path, s, b)
}

func (CSVSink) Encode(w io.Writer, b Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Content"}); err != nil {
		return err
	}
	for _, c := range b.Chunks {
		if err := cw.Write([]string{strings.TrimSpace(c.Text)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
