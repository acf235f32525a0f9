package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/document"
)

const report = `# Report
Intro line.
## Revenue
| Q | Amount |
| --- | --- |
| Q1 | 10 |
`

// resetFlags puts every flag of cmd and its subcommands back to its default
// so that one test's flags do not leak into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(input, []byte(report), 0o644))
	outDir := filepath.Join(dir, "build")

	out, err := execute(t, "split", input, "--output", outDir, "--no-docx", "--print", "--chunk-size", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "--- chunk 0 (text, line 2) ---\n# Report\n\nIntro line.\n")
	assert.Contains(t, out, "--- chunk 1 (table, line 4) ---")
	assert.Contains(t, out, "report: 2 chunks")
	assert.FileExists(t, filepath.Join(outDir, "report", "report.md"))
	assert.FileExists(t, filepath.Join(outDir, "report", "report.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, "report", "report.docx"))
}

func TestSplitCommand_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "split", "nope.md")
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestSplitCommand_FlagsDoNotLeak(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(input, []byte(report), 0o644))

	_, err := execute(t, "split", input, "--output", filepath.Join(dir, "first"), "--no-docx", "--print")
	require.NoError(t, err)

	out, err := execute(t, "split", input, "--output", filepath.Join(dir, "second"))
	require.NoError(t, err)

	assert.NotContains(t, out, "--- chunk")
	assert.FileExists(t, filepath.Join(dir, "second", "report", "report.docx"))
	assert.False(t, splitCmd.Flags().Changed("chunk-size"))
}

func TestFormatCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "manual.md")
	require.NoError(t, os.WriteFile(input, []byte("Manual\n2 Scope\n2.1 Goals\n"), 0o644))
	output := filepath.Join(dir, "manual.out.md")

	_, err := execute(t, "format", input, "-o", output)
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Manual\n2 Scope\n### 2.1 Goals\n", string(got))
}

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.Default()
	cfg.LogFormat = "json"
	var buf bytes.Buffer

	newLogger(cfg, &buf).Info("hello", "chunks", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.EqualValues(t, 3, rec["chunks"])
}

func TestNewLogger_Level(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer

	log := newLogger(cfg, &buf)
	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
