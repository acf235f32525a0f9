// Package markdown holds the line-level syntax rules the chunker relies on:
// ATX-style header levels and pipe tables.
package markdown

import "strings"

// MaxLevel is the deepest header level that is tracked.
const MaxLevel = 6

// HeaderLevel returns the header level of line, or 0 if it is not a header.
// Runs of more than MaxLevel markers are body text.
func HeaderLevel(line string) int {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > MaxLevel {
		return 0
	}
	return level
}

// HeaderText strips the marker run and surrounding whitespace.
func HeaderText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
}

// HeaderTracker holds the active header at each level while a document is
// scanned top to bottom. The zero value is ready to use.
type HeaderTracker struct {
	levels [MaxLevel + 1]string // index 0 unused
}

// Apply records a header line at level and clears every deeper level.
// Shallower levels are left as they are, so gaps are kept.
func (t *HeaderTracker) Apply(line string, level int) {
	if level < 1 || level > MaxLevel {
		return
	}
	t.levels[level] = HeaderText(line)
	for i := level + 1; i <= MaxLevel; i++ {
		t.levels[i] = ""
	}
}

func (t *HeaderTracker) level(n int) string {
	if n < 1 || n > MaxLevel {
		return ""
	}
	return t.levels[n]
}

// Breadcrumb renders the active headers, shallowest first.
func (t *HeaderTracker) Breadcrumb() []string {
	var out []string
	for level := 1; level <= MaxLevel; level++ {
		if t.levels[level] != "" {
			out = append(out, strings.Repeat("#", level)+" "+t.levels[level])
		}
	}
	return out
}

// Render returns the breadcrumb as a chunk prefix: one header per line and a
// trailing blank line, or "" before any header has been seen.
func (t *HeaderTracker) Render() string {
	return renderBreadcrumb(t.Breadcrumb())
}

// renderBreadcrumb joins rendered header lines into a chunk prefix.
func renderBreadcrumb(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n\n"
}
