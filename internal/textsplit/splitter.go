// Package textsplit cuts prose into pieces no longer than a character budget,
// preferring the coarsest separator that occurs in the text.
package textsplit

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is ordered from paragraph break down to single characters.
var DefaultSeparators = []string{
	"\n\n",
	"\n",
	"。", "！", "？",
	"；",
	". ", "! ", "? ",
	"，",
	" ",
	"",
}

// Config controls splitting behavior.
type Config struct {
	ChunkSize  int      // Maximum piece length in characters.
	Overlap    int      // Characters carried over between consecutive pieces.
	Separators []string // Preference order; "" means split between characters.
}

// Splitter is safe for concurrent use once built.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// New builds a Splitter. A non-positive size falls back to 300, and an
// overlap that would not let pieces advance is dropped.
func New(cfg Config) *Splitter {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 300
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.ChunkSize {
		cfg.Overlap = 0
	}
	seps := cfg.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}
	return &Splitter{
		chunkSize:  cfg.ChunkSize,
		overlap:    cfg.Overlap,
		separators: append([]string(nil), seps...),
	}
}

// ChunkSize returns the configured budget.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Split returns text cut into trimmed, non-empty pieces in source order.
// Every piece fits the budget as long as the separator list ends with "".
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var rest []string
	for i, candidate := range separators {
		if candidate == "" {
			sep = ""
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var out, fitting []string
	for _, piece := range splitKeep(text, sep) {
		if Len(piece) < s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			out = append(out, s.merge(fitting)...)
			fitting = nil
		}
		if len(rest) == 0 {
			if p := strings.TrimSpace(piece); p != "" {
				out = append(out, p)
			}
			continue
		}
		out = append(out, s.split(piece, rest)...)
	}
	if len(fitting) > 0 {
		out = append(out, s.merge(fitting)...)
	}
	return out
}

// merge greedily packs pieces up to the budget. Separators are already
// attached to the pieces, so they are concatenated as-is.
func (s *Splitter) merge(pieces []string) []string {
	var docs, current []string
	total := 0
	for _, p := range pieces {
		n := Len(p)
		if total+n > s.chunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				docs = append(docs, doc)
			}
			for len(current) > 0 && (total > s.overlap || total+n > s.chunkSize) {
				total -= Len(current[0])
				current = current[1:]
			}
		}
		current = append(current, p)
		total += n
	}
	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

// splitKeep splits text after each occurrence of sep, keeping sep at the end
// of the preceding piece. An empty sep splits into single characters.
func splitKeep(text, sep string) []string {
	if sep == "" {
		out := make([]string, 0, len(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}
	parts := strings.SplitAfter(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Len is the length measure used for every budget: characters, not bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
