package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/formatter"
	"github.com/dgallion1/mdsplit/internal/sink"
)

// Processor runs one document at a time through load, chunk and write.
type Processor struct {
	cfg     config.Config
	chunker *chunker.Chunker
	sinks   []sink.Sink
	log     *slog.Logger
}

// NewProcessor validates cfg and wires the chunker and the sinks it enables.
func NewProcessor(cfg config.Config, log *slog.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Processor{
		cfg:     cfg,
		chunker: chunker.New(chunkerConfig(cfg, cfg.ChunkSize)),
		sinks:   sink.Enabled(cfg),
		log:     log,
	}, nil
}

func chunkerConfig(cfg config.Config, size int) chunker.Config {
	return chunker.Config{
		ChunkSize:  size,
		Overlap:    cfg.ChunkOverlap,
		Separators: cfg.Separators,
	}
}

// Result describes a completed run.
type Result struct {
	Input       string
	Document    string
	ContentHash string
	OutputDir   string
	Chunks      []document.Chunk
	Files       []string
}

// Process chunks the markdown file at inputPath and writes every enabled
// output under OutputDir/<document name>/. Either all outputs are written or
// an error is returned; nothing is retried.
func (p *Processor) Process(ctx context.Context, inputPath string) (*Result, error) {
	log := p.log.With("input", inputPath)

	doc, err := document.Open(inputPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrInputNotFound):
			log.Error("file not found", "error", err)
		case errors.Is(err, ErrUnsupportedFormat):
			log.Error("unsupported format", "error", err)
		default:
			log.Error("read failed", "error", err)
			err = &ProcessingError{Op: "read", Err: err}
		}
		return nil, err
	}
	log = log.With("document", doc.Name)

	if p.cfg.NormalizeHeadings {
		doc = normalize(doc)
	}

	chunks := p.chunker.ChunkAll(doc)
	log.Info("chunked document", "chunks", len(chunks), "chunk_size", p.chunker.Config().ChunkSize)

	res := &Result{
		Input:       inputPath,
		Document:    doc.Name,
		ContentHash: doc.ContentHash(),
		Chunks:      chunks,
	}
	if len(p.sinks) == 0 {
		return res, nil
	}

	res.OutputDir = filepath.Join(p.cfg.OutputDir, doc.Name)
	if err := os.MkdirAll(res.OutputDir, 0o755); err != nil {
		log.Error("create output directory failed", "dir", res.OutputDir, "error", err)
		return nil, &ProcessingError{Op: "create output directory", Err: err}
	}

	batch := sink.Batch{
		Document:    doc.Name,
		ContentHash: res.ContentHash,
		ChunkSize:   p.chunker.Config().ChunkSize,
		Chunks:      chunks,
	}
	for _, s := range p.sinks {
		path := filepath.Join(res.OutputDir, doc.Name+s.Extension())
		if err := s.WriteFile(ctx, path, batch); err != nil {
			log.Error("write output failed", "format", s.Format(), "path", path, "error", err)
			return nil, &ProcessingError{Op: fmt.Sprintf("write %s", s.Format()), Err: err}
		}
		log.Debug("wrote output", "format", s.Format(), "path", path)
		res.Files = append(res.Files, path)
	}

	log.Info("processing complete", "chunks", len(chunks), "output_dir", res.OutputDir, "files", len(res.Files))
	return res, nil
}

// ChunkOptions overrides the configured behavior for a single in-memory run.
type ChunkOptions struct {
	ChunkSize int  // 0 keeps the configured size
	Normalize bool // normalize headings even when the config does not
}

// ChunkReader chunks an uploaded document without writing any output.
func (p *Processor) ChunkReader(r io.Reader, filename string, opts ChunkOptions) (*document.Document, []document.Chunk, error) {
	if !document.IsSupportedExtension(filename) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	doc, err := document.Read(r, filename)
	if err != nil {
		return nil, nil, &ProcessingError{Op: "read", Err: err}
	}
	if opts.Normalize || p.cfg.NormalizeHeadings {
		doc = normalize(doc)
	}

	c := p.chunker
	if opts.ChunkSize > 0 && opts.ChunkSize != c.Config().ChunkSize {
		c = chunker.New(chunkerConfig(p.cfg, opts.ChunkSize))
	}
	chunks := c.ChunkAll(doc)
	p.log.Debug("chunked upload", "document", doc.Name, "chunks", len(chunks))
	return doc, chunks, nil
}

func normalize(doc *document.Document) *document.Document {
	out := document.New(doc.Name, formatter.Format(doc.Text()))
	out.Path = doc.Path
	return out
}
