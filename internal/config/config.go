package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Chunking
	ChunkSize    int      `yaml:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
	Separators   []string `yaml:"separators"`

	// Preprocessing
	NormalizeHeadings bool `yaml:"normalize_headings"`

	// Output
	OutputDir        string `yaml:"output_dir"`
	EmitText         bool   `yaml:"emit_text"`
	EmitRichDocument bool   `yaml:"emit_rich_document"`
	EmitTabular      bool   `yaml:"emit_tabular"`
	EmitHTML         bool   `yaml:"emit_html"`
	EmitSQLite       bool   `yaml:"emit_sqlite"`

	// HTTP API
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		ChunkSize:        300,
		OutputDir:        "output",
		EmitText:         true,
		EmitRichDocument: true,
		EmitTabular:      true,
		Port:             "8090",
		MaxUploadBytes:   10 << 20, // 10MB
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load layers, lowest precedence first: defaults, the YAML file at path (if
// path is non-empty), a .env file in the working directory, then MDSPLIT_*
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	cfg.ChunkSize = envInt("MDSPLIT_CHUNK_SIZE", cfg.ChunkSize)
	cfg.ChunkOverlap = envInt("MDSPLIT_CHUNK_OVERLAP", cfg.ChunkOverlap)
	cfg.NormalizeHeadings = envBool("MDSPLIT_NORMALIZE_HEADINGS", cfg.NormalizeHeadings)

	cfg.OutputDir = envOr("MDSPLIT_OUTPUT_DIR", cfg.OutputDir)
	cfg.EmitText = envBool("MDSPLIT_EMIT_TEXT", cfg.EmitText)
	cfg.EmitRichDocument = envBool("MDSPLIT_EMIT_RICH_DOCUMENT", cfg.EmitRichDocument)
	cfg.EmitTabular = envBool("MDSPLIT_EMIT_TABULAR", cfg.EmitTabular)
	cfg.EmitHTML = envBool("MDSPLIT_EMIT_HTML", cfg.EmitHTML)
	cfg.EmitSQLite = envBool("MDSPLIT_EMIT_SQLITE", cfg.EmitSQLite)

	cfg.Port = envOr("MDSPLIT_PORT", cfg.Port)
	cfg.APIKey = envOr("MDSPLIT_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MDSPLIT_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)

	cfg.LogLevel = envOr("MDSPLIT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("MDSPLIT_LOG_FORMAT", cfg.LogFormat)

	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.ChunkOverlap)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
