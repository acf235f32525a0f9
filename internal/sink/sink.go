// Package sink serializes a chunk sequence to the supported output files.
package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/document"
)

// Format names an output format.
type Format string

const (
	FormatText   Format = "text"
	FormatDocx   Format = "docx"
	FormatCSV    Format = "csv"
	FormatHTML   Format = "html"
	FormatSQLite Format = "sqlite"
)

// Separator precedes every chunk in the text and docx outputs.
var Separator = strings.Repeat("=", 40)

// Batch is everything a sink gets to write: one document's chunks plus the
// facts about the run that produced them.
type Batch struct {
	Document    string
	ContentHash string
	ChunkSize   int
	Chunks      []document.Chunk
}

// Sink writes a batch to a file.
type Sink interface {
	Format() Format
	Extension() string
	WriteFile(ctx context.Context, path string, b Batch) error
}

// Encoder is implemented by sinks that can stream to any writer.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, b Batch) error
}

// ForFormat returns the sink for f.
func ForFormat(f Format) (Sink, error) {
	switch Format(strings.ToLower(string(f))) {
	case FormatText, "md", "txt":
		return TextSink{}, nil
	case FormatDocx:
		return DocxSink{}, nil
	case FormatCSV:
		return CSVSink{}, nil
	case FormatHTML:
		return HTMLSink{}, nil
	case FormatSQLite:
		return SQLiteSink{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", f)
	}
}

// Enabled returns the sinks switched on in cfg, in a fixed order.
func Enabled(cfg config.Config) []Sink {
	var sinks []Sink
	if cfg.EmitText {
		sinks = append(sinks, TextSink{})
	}
	if cfg.EmitRichDocument {
		sinks = append(sinks, DocxSink{})
	}
	if cfg.EmitTabular {
		sinks = append(sinks, CSVSink{})
	}
	if cfg.EmitHTML {
		sinks = append(sinks, HTMLSink{})
	}
	if cfg.EmitSQLite {
		sinks = append(sinks, SQLiteSink{})
	}
	return sinks
}

// encodeFile creates path and streams enc into it. A partially written file
// is removed when encoding fails.
func encodeFile(ctx context.Context, path string, enc Encoder, b Batch) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := enc.Encode(w, b); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
