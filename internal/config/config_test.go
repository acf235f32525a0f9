package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so a developer's .env cannot leak in.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 300, cfg.ChunkSize)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.True(t, cfg.EmitText)
	assert.True(t, cfg.EmitRichDocument)
	assert.True(t, cfg.EmitTabular)
	assert.False(t, cfg.EmitHTML)
	assert.False(t, cfg.EmitSQLite)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "mdsplit.yaml")
	yml := "chunk_size: 500\nemit_rich_document: false\nemit_html: true\noutput_dir: chunks\nseparators: [\"\\n\\n\", \"\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("MDSPLIT_CHUNK_SIZE", "800")
	t.Setenv("MDSPLIT_EMIT_SQLITE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.ChunkSize, "env overrides file")
	assert.False(t, cfg.EmitRichDocument)
	assert.True(t, cfg.EmitHTML)
	assert.True(t, cfg.EmitSQLite)
	assert.True(t, cfg.EmitText, "unset keys keep defaults")
	assert.Equal(t, "chunks", cfg.OutputDir)
	assert.Equal(t, []string{"\n\n", ""}, cfg.Separators)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MDSPLIT_OUTPUT_DIR=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MDSPLIT_OUTPUT_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.OutputDir)
}

func TestLoad_InvalidEnvKeepsFallback(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MDSPLIT_CHUNK_SIZE", "lots")
	t.Setenv("MDSPLIT_EMIT_TEXT", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.ChunkSize)
	assert.True(t, cfg.EmitText)
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chunk_size: [nope"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"negative chunk size", func(c *Config) { c.ChunkSize = -5 }, true},
		{"overlap equals size", func(c *Config) { c.ChunkOverlap = 300 }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"overlap below size", func(c *Config) { c.ChunkOverlap = 50 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"json format", func(c *Config) { c.LogFormat = "JSON" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"zero upload", func(c *Config) { c.MaxUploadBytes = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
