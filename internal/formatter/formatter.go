// Package formatter rewrites section-numbered lines ("1.2 Scope",
// "3 概述") into markdown headers so the chunker can track them.
package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/markdown"
)

var (
	dottedNumber = regexp.MustCompile(`^\d+(\.\d+)+`)
	numberedCJK  = regexp.MustCompile(`^\d+\s*[\x{4e00}-\x{9fff}]{2,}`)
)

// DefaultOutputDir is used when a Formatter has no OutputDir.
var DefaultOutputDir = filepath.Join("output", "formatted")

// Format normalizes heading markup line by line. Blank lines and the first
// non-empty line (taken as the title) pass through unchanged.
//
//	1.2 Scope    -> ### 1.2 Scope   (dots in the number + 2, at most 6)
//	3 概述        -> ## 3 概述
func Format(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	seenTitle := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, line)
			continue
		}
		if !seenTitle {
			seenTitle = true
			out = append(out, line)
			continue
		}
		if level := headingLevel(trimmed); level > 0 {
			out = append(out, strings.Repeat("#", level)+" "+trimmed)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func headingLevel(line string) int {
	if strings.HasPrefix(line, "#") {
		return 0
	}
	if prefix := dottedNumber.FindString(line); prefix != "" {
		return min(strings.Count(prefix, ".")+2, markdown.MaxLevel)
	}
	if numberedCJK.MatchString(line) {
		return 2
	}
	return 0
}

// Formatter writes normalized copies of markdown files.
type Formatter struct {
	OutputDir string
}

// FormatFile normalizes input and writes it to output, or to
// OutputDir/<input file name> when output is empty. It returns the path written.
func (f *Formatter) FormatFile(input, output string) (string, error) {
	doc, err := document.Open(input)
	if err != nil {
		return "", err
	}

	if output == "" {
		dir := f.OutputDir
		if dir == "" {
			dir = DefaultOutputDir
		}
		output = filepath.Join(dir, filepath.Base(input))
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(Format(doc.Text())), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", output, err)
	}
	return output, nil
}
