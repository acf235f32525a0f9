package sink

import (
	"context"
	"io"
)

// TextSink writes every chunk after a separator line.
type TextSink struct{}

func (TextSink) Format() Format      { return FormatText }
func (TextSink) Extension() string   { return ".md" }
func (TextSink) ContentType() string { return "text/markdown; charset=utf-8" }

func (s TextSink) WriteFile(ctx context.Context, path string, b Batch) error {
	return encodeFile(ctx, path, s, b)
}

func (TextSink) Encode(w io.Writer, b Batch) error {
	for _, c := range b.Chunks {
		if _, err := io.WriteString(w, "\n"+Separator+"\n\n"+c.Text); err != nil {
			return err
		}
	}
	return nil
}
