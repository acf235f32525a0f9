package markdown

import (
	"strings"
	"unicode/utf8"
)

// IsTableRow reports whether the trimmed line is delimited by pipes on both ends.
func IsTableRow(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

// IsSeparatorRow reports whether line is the divider between a table header
// and its body: either every cell is dash fill (with optional alignment
// colons) or the line carries a run of four dashes.
func IsSeparatorRow(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "|") {
		return false
	}
	if strings.Contains(t, "----") {
		return true
	}

	cells := strings.Split(strings.Trim(t, "|"), "|")
	dashes := false
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if strings.Trim(cell, "-:") != "" || !strings.Contains(cell, "-") {
			return false
		}
		dashes = true
	}
	return dashes
}

func isTableLine(line string) bool {
	return IsTableRow(line) || IsSeparatorRow(line)
}

// ExtractTable returns the contiguous table block containing lines[anchor]
// and the index of its last line. The walk goes backward from the anchor and
// then forward from the line after it, so an anchor in the middle of a table
// still yields the whole block.
func ExtractTable(lines []string, anchor int) ([]string, int) {
	if anchor < 0 || anchor >= len(lines) {
		return nil, anchor
	}

	start := anchor
	for start > 0 && isTableLine(lines[start-1]) {
		start--
	}
	end := anchor
	for end+1 < len(lines) && isTableLine(lines[end+1]) {
		end++
	}

	block := make([]string, end-start+1)
	copy(block, lines[start:end+1])
	return block, end
}

// SplitTable divides an oversized table into parts that each repeat the
// header and separator rows. The number of content rows per part is derived
// from the first content row's length and never drops below two, so a part
// can exceed limit when single rows are long.
func SplitTable(block []string, limit int) [][]string {
	if len(block) < 3 || runeLen(strings.Join(block, "\n")) <= limit {
		return [][]string{block}
	}

	header, separator := block[0], block[1]
	rows := block[2:]

	rowLen := runeLen(rows[0])
	if rowLen == 0 {
		rowLen = 1
	}
	perPart := (limit - runeLen(header) - runeLen(separator)) / rowLen
	if perPart < 2 {
		perPart = 2
	}

	parts := make([][]string, 0, (len(rows)+perPart-1)/perPart)
	for i := 0; i < len(rows); i += perPart {
		end := min(i+perPart, len(rows))
		part := make([]string, 0, 2+end-i)
		part = append(part, header, separator)
		part = append(part, rows[i:end]...)
		parts = append(parts, part)
	}
	return parts
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
