package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mvp-joe/ubidoc/internal/scanner"
)

var (
	// ErrInvalidMode indicates an unsupported scan mode
	ErrInvalidMode = errors.New("invalid scan mode")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidLookahead indicates a non-positive declaration lookahead
	ErrInvalidLookahead = errors.New("invalid lookahead")

	// ErrInvalidLanguage indicates an unknown or missing language
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidFormat indicates an unknown or missing output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidRepo indicates a repository that is not "owner/name"
	ErrInvalidRepo = errors.New("invalid repository")

	// ErrInvalidDebounce indicates a negative debounce interval
	ErrInvalidDebounce = errors.New("invalid debounce")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

var repoPattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode != ModeLexical && mode != ModeAST {
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidMode, ModeLexical, ModeAST, cfg.Mode))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}
	if cfg.Lookahead <= 0 {
		errs = append(errs, fmt.Errorf("%w: lookahead must be positive, got %d", ErrInvalidLookahead, cfg.Lookahead))
	}
	if len(cfg.Languages) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one language required", ErrInvalidLanguage))
	}
	for _, name := range cfg.Languages {
		if _, ok := scanner.ParseLanguage(name); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown language '%s'", ErrInvalidLanguage, name))
		}
	}
	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if len(cfg.Formats) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one format required", ErrInvalidFormat))
	}
	for _, f := range cfg.Formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case FormatHTML, FormatJSON, FormatCSV, FormatSQLite:
		default:
			errs = append(errs, fmt.Errorf("%w: unknown format '%s'", ErrInvalidFormat, f))
		}
	}
	if cfg.Repo != "" {
		if !repoPattern.MatchString(cfg.Repo) {
			errs = append(errs, fmt.Errorf("%w: must be 'owner/name', got '%s'", ErrInvalidRepo, cfg.Repo))
		}
		if strings.TrimSpace(cfg.Branch) == "" {
			errs = append(errs, fmt.Errorf("%w: branch is required when repo is set", ErrInvalidRepo))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Every wrapped error stays reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return &multiError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type multiError struct {
	msg  string
	errs []error
}

func (e *multiError) Error() string   { return e.msg }
func (e *multiError) Unwrap() []error { return e.errs }
