package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// fontSize is in half-points (11pt).
const fontSize = "22"

// DocxSink writes a Word document with a separator paragraph and a body
// paragraph per chunk.
type DocxSink struct{}

func (DocxSink) Format() Format    { return FormatDocx }
func (DocxSink) Extension() string { return ".docx" }
func (DocxSink) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (s DocxSink) WriteFile(ctx context.Context, path string, b Batch) error {
	return encodeFile(ctx, path, s, b)
}

func (DocxSink) Encode(w io.Writer, b Batch) error {
	doc := docx.New().WithDefaultTheme()
	for _, c := range b.Chunks {
		doc.AddParagraph().AddText(Separator).Size(fontSize)
		doc.AddParagraph().AddText(c.Text).Size(fontSize)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("encode docx: %w", err)
	}
	return nil
}
