// Package config loads ubidoc configuration from .ubidoc/config.yml with
// UBIDOC_* environment variable overrides.
package config

import (
	"time"

	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// Config represents the complete ubidoc configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// Scan modes.
const (
	ModeLexical = "lexical"
	ModeAST     = "ast"
)

// ScanConfig controls comment location and ingestion.
type ScanConfig struct {
	Mode      string   `yaml:"mode" mapstructure:"mode"`           // "lexical" or "ast"
	Workers   int      `yaml:"workers" mapstructure:"workers"`     // 0 means one per CPU
	Lookahead int      `yaml:"lookahead" mapstructure:"lookahead"` // lines searched for a declaration
	Languages []string `yaml:"languages" mapstructure:"languages"` // enabled language names
	CacheSize int      `yaml:"cache_size" mapstructure:"cache_size"`
}

// Output formats.
const (
	FormatHTML   = "html"
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// OutputConfig controls generated files.
type OutputConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
	// Repo is "owner/name" on GitHub. When set, rows link to their source.
	Repo   string `yaml:"repo" mapstructure:"repo"`
	Branch string `yaml:"branch" mapstructure:"branch"`
}

// WatchConfig controls re-ingestion on file changes.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn or error
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	languages := make([]string, 0, len(scanner.Languages()))
	var include []string
	for _, lang := range scanner.Languages() {
		languages = append(languages, string(lang))
		for _, ext := range scanner.Extensions(lang) {
			include = append(include, "**/*"+ext)
		}
	}

	return &Config{
		Paths: PathsConfig{
			Include: include,
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"ubi-doc/**",
			},
		},
		Scan: ScanConfig{
			Mode:      ModeLexical,
			Workers:   0,
			Lookahead: scanner.DefaultLookahead,
			Languages: languages,
			CacheSize: 4096,
		},
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{FormatHTML},
			Branch:  "main",
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// EnabledLanguages returns the configured languages. Unknown names are
// rejected by Validate and skipped here.
func (c *Config) EnabledLanguages() []scanner.Language {
	var out []scanner.Language
	for _, name := range c.Scan.Languages {
		if lang, ok := scanner.ParseLanguage(name); ok {
			out = append(out, lang)
		}
	}
	return out
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
