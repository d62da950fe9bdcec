package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .ubidoc/config.yml when present
// - Load() loads from .ubidoc/config.yaml when present
// - Load() merges config file with defaults
// - Environment variables override config file values
// - Load() lower-cases scan mode, output formats and log level
// - Load() returns error for malformed YAML
// - Load() returns error for invalid configuration values
// - Validate() rejects each invalid field with its sentinel error
// - Validate() returns multiple errors for multiple invalid fields
// - EnabledLanguages() and Debounce() convert configured values

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".ubidoc")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	return root
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, ModeLexical, cfg.Scan.Mode)
	assert.Equal(t, 0, cfg.Scan.Workers)
	assert.Equal(t, scanner.DefaultLookahead, cfg.Scan.Lookahead)
	assert.Len(t, cfg.Scan.Languages, len(scanner.Languages()))
	assert.Contains(t, cfg.Paths.Include, "**/*.kt")
	assert.Contains(t, cfg.Paths.Include, "**/*.php")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.Equal(t, []string{FormatHTML}, cfg.Output.Formats)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "main", cfg.Output.Branch)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	root := writeConfig(t, "config.yml", `
paths:
  include:
    - "src/**/*.kt"
  ignore:
    - "generated/**"
scan:
  mode: ast
  workers: 3
  lookahead: 8
  languages: [kotlin, java]
  cache_size: 0
output:
  dir: site
  formats: [html, json, csv, sqlite]
  repo: acme/shop
  branch: develop
watch:
  debounce_ms: 250
log:
  level: debug
`)

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.kt"}, cfg.Paths.Include)
	assert.Equal(t, []string{"generated/**"}, cfg.Paths.Ignore)
	assert.Equal(t, ModeAST, cfg.Scan.Mode)
	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.Equal(t, 8, cfg.Scan.Lookahead)
	assert.Equal(t, []string{"kotlin", "java"}, cfg.Scan.Languages)
	assert.Equal(t, 0, cfg.Scan.CacheSize)
	assert.Equal(t, "site", cfg.Output.Dir)
	assert.Equal(t, []string{"html", "json", "csv", "sqlite"}, cfg.Output.Formats)
	assert.Equal(t, "acme/shop", cfg.Output.Repo)
	assert.Equal(t, "develop", cfg.Output.Branch)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	root := writeConfig(t, "config.yaml", "scan:\n  mode: ast\n")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, ModeAST, cfg.Scan.Mode)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	root := writeConfig(t, "config.yml", "output:\n  repo: acme/shop\n")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, "acme/shop", cfg.Output.Repo)
	assert.Equal(t, "main", cfg.Output.Branch)
	assert.Equal(t, Default().Paths, cfg.Paths)
	assert.Equal(t, Default().Scan, cfg.Scan)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	root := writeConfig(t, "config.yml", "scan:\n  mode: lexical\n  workers: 2\n")
	t.Setenv("UBIDOC_SCAN_MODE", "ast")
	t.Setenv("UBIDOC_SCAN_WORKERS", "6")
	t.Setenv("UBIDOC_OUTPUT_REPO", "acme/billing")
	t.Setenv("UBIDOC_LOG_LEVEL", "warn")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, ModeAST, cfg.Scan.Mode)
	assert.Equal(t, 6, cfg.Scan.Workers)
	assert.Equal(t, "acme/billing", cfg.Output.Repo)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_NormalizesCase(t *testing.T) {
	root := writeConfig(t, "config.yml", "scan:\n  mode: AST\noutput:\n  formats: [HTML, ' Json ']\nlog:\n  level: WARN\n")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, ModeAST, cfg.Scan.Mode)
	assert.Equal(t, []string{"html", "json"}, cfg.Output.Formats)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_NormalizesEnvironmentCase(t *testing.T) {
	root := writeConfig(t, "config.yml", "scan:\n  mode: lexical\n")
	t.Setenv("UBIDOC_SCAN_MODE", "Ast")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, ModeAST, cfg.Scan.Mode)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	root := writeConfig(t, "config.yml", "scan:\n  mode: [unclosed\n")

	_, err := NewLoader(root).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	root := writeConfig(t, "config.yml", "scan:\n  lookahead: 0\n")

	_, err := NewLoader(root).Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLookahead)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"mode", func(c *Config) { c.Scan.Mode = "regex" }, ErrInvalidMode},
		{"workers", func(c *Config) { c.Scan.Workers = -1 }, ErrInvalidWorkers},
		{"lookahead", func(c *Config) { c.Scan.Lookahead = 0 }, ErrInvalidLookahead},
		{"no languages", func(c *Config) { c.Scan.Languages = nil }, ErrInvalidLanguage},
		{"unknown language", func(c *Config) { c.Scan.Languages = []string{"cobol"} }, ErrInvalidLanguage},
		{"cache size", func(c *Config) { c.Scan.CacheSize = -5 }, ErrInvalidCacheSize},
		{"no formats", func(c *Config) { c.Output.Formats = nil }, ErrInvalidFormat},
		{"unknown format", func(c *Config) { c.Output.Formats = []string{"pdf"} }, ErrInvalidFormat},
		{"repo", func(c *Config) { c.Output.Repo = "https://github.com/acme/shop" }, ErrInvalidRepo},
		{"branch", func(c *Config) { c.Output.Repo = "acme/shop"; c.Output.Branch = "" }, ErrInvalidRepo},
		{"debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidDebounce},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Scan.Mode = "regex"
	cfg.Scan.Workers = -1
	cfg.Output.Formats = []string{"pdf"}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConfig_Conversions(t *testing.T) {
	cfg := Default()
	cfg.Scan.Languages = []string{"Kotlin", " php "}
	cfg.Watch.DebounceMS = 250

	assert.Equal(t, []scanner.Language{scanner.Kotlin, scanner.PHP}, cfg.EnabledLanguages())
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
}
