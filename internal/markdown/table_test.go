package markdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTableRow(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"| a | b |", true},
		{"  | a | b |  ", true},
		{"|---|---|", true},
		{"| open", false},
		{"a | b", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTableRow(tt.line); got != tt.want {
			t.Errorf("IsTableRow(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|---|---|", true},
		{"| :--- | ---: | :-: |", true},
		{"|------ unterminated", true},
		{"| a | b |", false},
		{"|   |   |", false},
		{"| -- | x |", false},
		{"---", false},
	}
	for _, tt := range tests {
		if got := IsSeparatorRow(tt.line); got != tt.want {
			t.Errorf("IsSeparatorRow(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestExtractTable_FromFirstRow(t *testing.T) {
	lines := []string{
		"intro",
		"| h1 | h2 |",
		"|----|----|",
		"| a  | b  |",
		"| c  | d  |",
		"after",
	}
	block, last := ExtractTable(lines, 1)
	assert.Equal(t, lines[1:5], block)
	assert.Equal(t, 4, last)
}

func TestExtractTable_FromMiddleRow(t *testing.T) {
	lines := []string{
		"| h1 | h2 |",
		"|----|----|",
		"| a  | b  |",
		"| c  | d  |",
	}
	block, last := ExtractTable(lines, 2)
	assert.Equal(t, lines, block)
	assert.Equal(t, 3, last)
}

func TestExtractTable_SingleRow(t *testing.T) {
	lines := []string{"text", "| lonely |", "text"}
	block, last := ExtractTable(lines, 1)
	assert.Equal(t, []string{"| lonely |"}, block)
	assert.Equal(t, 1, last)
}

func TestExtractTable_AnchorOutOfRange(t *testing.T) {
	block, last := ExtractTable([]string{"| a |"}, 5)
	assert.Nil(t, block)
	assert.Equal(t, 5, last)
}

func TestExtractTable_DoesNotAliasInput(t *testing.T) {
	lines := []string{"| a |", "|---|"}
	block, _ := ExtractTable(lines, 0)
	block[0] = "changed"
	assert.Equal(t, "| a |", lines[0])
}

func tableLines(rows int) []string {
	lines := []string{"| id | name |", "|----|------|"}
	for i := 0; i < rows; i++ {
		lines = append(lines, fmt.Sprintf("| %02d | row%02d |", i, i))
	}
	return lines
}

func TestSplitTable_FitsUnsplit(t *testing.T) {
	block := tableLines(2)
	parts := SplitTable(block, 300)
	require.Len(t, parts, 1)
	assert.Equal(t, block, parts[0])
}

func TestSplitTable_RepeatsHeaderAndSeparator(t *testing.T) {
	block := tableLines(10)
	parts := SplitTable(block, 50)
	require.GreaterOrEqual(t, len(parts), 2)

	var rows []string
	for _, p := range parts {
		require.GreaterOrEqual(t, len(p), 3)
		assert.Equal(t, block[0], p[0])
		assert.Equal(t, block[1], p[1])
		rows = append(rows, p[2:]...)
	}
	assert.Equal(t, block[2:], rows, "content rows must be reconstructed in order")
}

func TestSplitTable_RowsPerPartFromBudget(t *testing.T) {
	block := tableLines(10)
	// header 13 + separator 13 = 26; each row is 14 chars; (86-26)/14 = 4 rows per part.
	parts := SplitTable(block, 86)
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 6)
	assert.Len(t, parts[1], 6)
	assert.Len(t, parts[2], 4)
}

func TestSplitTable_AtLeastTwoRowsPerPart(t *testing.T) {
	block := []string{
		"| h |",
		"|---|",
		"| " + strings.Repeat("x", 100) + " |",
		"| " + strings.Repeat("y", 100) + " |",
		"| " + strings.Repeat("z", 100) + " |",
	}
	parts := SplitTable(block, 20)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 4)
	assert.Len(t, parts[1], 3)
}

func TestSplitTable_NoContentRows(t *testing.T) {
	block := []string{"| " + strings.Repeat("h", 80) + " |", "|---|"}
	parts := SplitTable(block, 10)
	require.Len(t, parts, 1)
	assert.Equal(t, block, parts[0])
}

func TestSplitTable_EmptyFirstRowGuardsDivision(t *testing.T) {
	block := []string{"| h |", "|---|", "", "| a |", "| b |"}
	assert.NotPanics(t, func() {
		parts := SplitTable(block, 3)
		assert.NotEmpty(t, parts)
	})
}
