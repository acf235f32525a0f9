package sink

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Arial, sans-serif; max-width: 52rem; margin: 2rem auto; }
section.chunk { padding: 0.5rem 1rem; }
section.table { background: #f6f8fa; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.2rem 0.5rem; }
</style>
</head>
<body>
`

// HTMLSink renders each chunk's markdown to a preview page.
type HTMLSink struct{}

func (HTMLSink) Format() Format      { return FormatHTML }
func (HTMLSink) Extension() string   { return ".html" }
func (HTMLSink) ContentType() string { return "text/html; charset=utf-8" }

func (s HTMLSink) WriteFile(ctx context.Context, path string, b Batch) error {
	return encodeFile(ctx, path, s, b)
}

func (HTMLSink) Encode(w io.Writer, b Batch) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, htmlHead, html.EscapeString(b.Document))
	for _, c := range b.Chunks {
		fmt.Fprintf(bw, "<hr>\n<section class=\"chunk %s\" id=\"chunk-%d\">\n", c.Kind, c.Index)
		if err := markdownRenderer.Convert([]byte(c.Text), bw); err != nil {
			return fmt.Errorf("render chunk %d: %w", c.Index, err)
		}
		bw.WriteString("</section>\n")
	}
	bw.WriteString("</body>\n</html>\n")
	return bw.Flush()
}
