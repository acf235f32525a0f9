package chunker

import (
	"iter"
	"strings"
	"unicode"

	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/markdown"
	"github.com/dgallion1/mdsplit/internal/textsplit"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize  int      // Maximum payload length in characters.
	Overlap    int      // Characters repeated between consecutive prose chunks.
	Separators []string // Splitter preference order; nil uses textsplit.DefaultSeparators.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 300,
	}
}

// Chunker turns documents into breadcrumb-prefixed chunks. It holds no
// per-document state, so one Chunker can serve concurrent callers.
type Chunker struct {
	cfg      Config
	splitter *textsplit.Splitter
}

// New builds a Chunker. A non-positive size falls back to the splitter's
// default, which matches DefaultConfig.
func New(cfg Config) *Chunker {
	splitter := textsplit.New(textsplit.Config{
		ChunkSize:  cfg.ChunkSize,
		Overlap:    cfg.Overlap,
		Separators: cfg.Separators,
	})
	cfg.ChunkSize = splitter.ChunkSize()
	return &Chunker{
		cfg:      cfg,
		splitter: splitter,
	}
}

// Config returns the effective configuration.
func (c *Chunker) Config() Config {
	return c.cfg
}

// Chunks scans doc top to bottom and yields chunks in document order. Work
// happens only as the caller pulls; breaking out of the loop stops the scan.
// The sequence is single-use: ranging over it a second time yields nothing.
func (c *Chunker) Chunks(doc *document.Document) iter.Seq[document.Chunk] {
	used := false
	return func(yield func(document.Chunk) bool) {
		if used {
			return
		}
		used = true
		s := &scan{
			splitter: c.splitter,
			limit:    c.cfg.ChunkSize,
			lines:    doc.Lines,
			yield:    yield,
			start:    -1,
		}
		s.run()
	}
}

// ChunkAll materializes every chunk of doc.
func (c *Chunker) ChunkAll(doc *document.Document) []document.Chunk {
	var chunks []document.Chunk
	for chunk := range c.Chunks(doc) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Split chunks markdown text and returns the rendered chunk strings.
func Split(text string, cfg Config) []string {
	var out []string
	for chunk := range New(cfg).Chunks(document.New("", text)) {
		out = append(out, chunk.Text)
	}
	return out
}

// scan is the state of one pass over a document.
type scan struct {
	splitter *textsplit.Splitter
	limit    int
	lines    []string
	yield    func(document.Chunk) bool

	headers markdown.HeaderTracker
	crumb   []string
	prefix  string

	buf   []string
	start int // line index of the first non-blank buffered line, -1 if none
	index int
}

func (s *scan) run() {
	i := 0
	for i < len(s.lines) {
		line := strings.TrimRightFunc(s.lines[i], unicode.IsSpace)

		if line == "" {
			s.buf = append(s.buf, line)
			i++
			continue
		}

		if level := markdown.HeaderLevel(line); level > 0 {
			// Buffered prose belongs to the header that was active before this one.
			if !s.flush() {
				return
			}
			s.headers.Apply(line, level)
			s.crumb = s.headers.Breadcrumb()
			s.prefix = s.headers.Render()
			i++
			continue
		}

		if markdown.IsTableRow(line) || markdown.IsSeparatorRow(line) {
			if !s.flush() {
				return
			}
			block, last := markdown.ExtractTable(s.lines, i)
			first := last - len(block) + 1
			for _, part := range markdown.SplitTable(block, s.limit) {
				if !s.emit(document.KindTable, strings.Join(part, "\n"), "\n\n", first) {
					return
				}
			}
			i = last + 1
			continue
		}

		if s.start < 0 {
			s.start = i
		}
		s.buf = append(s.buf, line)
		i++
	}
	s.flush()
}

// flush splits the buffered prose into chunks. The buffer is cleared even
// when it held only blank lines. It returns false once the consumer stops.
func (s *scan) flush() bool {
	if len(s.buf) == 0 {
		return true
	}
	text := strings.TrimSpace(strings.Join(s.buf, "\n"))
	start := s.start
	s.buf = s.buf[:0]
	s.start = -1
	if text == "" {
		return true
	}

	for _, fragment := range s.splitter.Split(text) {
		if !s.emit(document.KindText, fragment, "\n", start) {
			return false
		}
	}
	return true
}

func (s *scan) emit(kind document.Kind, body, terminator string, line int) bool {
	chunk := document.Chunk{
		Index:      s.index,
		Kind:       kind,
		Breadcrumb: copyBreadcrumb(s.crumb),
		Body:       body,
		Text:       s.prefix + body + terminator,
		StartLine:  line + 1,
	}
	s.index++
	return s.yield(chunk)
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
