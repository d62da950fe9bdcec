// Package output renders a glossary table to the configured formats under
// <dir>/ubi-doc.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/logging"
)

// AssetsDir is the directory, relative to the output dir, holding every
// rendered file.
const AssetsDir = "ubi-doc"

// Format names.
const (
	FormatHTML   = "html"
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Options configures writers.
type Options struct {
	// Dir is the parent of the ubi-doc directory.
	Dir string
	// Repo is a GitHub "owner/name". Empty disables source links.
	Repo   string
	Branch string
	Logger *logging.Logger
}

// Writer renders a table in one format.
type Writer interface {
	Format() string
	// Write replaces previously rendered files with t.
	Write(ctx context.Context, t *glossary.Table) ([]string, error)
}

// NewWriter returns the writer for format.
func NewWriter(format string, opts Options) (Writer, error) {
	switch format {
	case FormatHTML:
		return &HTMLWriter{opts: opts}, nil
	case FormatJSON:
		return &JSONWriter{opts: opts}, nil
	case FormatCSV:
		return &CSVWriter{opts: opts}, nil
	case FormatSQLite:
		return &SQLiteWriter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Set writes a table to several formats.
type Set struct {
	writers []Writer
	logger  *logging.Logger
}

// NewSet creates writers for formats, in order.
func NewSet(formats []string, opts Options) (*Set, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	s := &Set{logger: opts.Logger}
	for _, f := range formats {
		w, err := NewWriter(f, opts)
		if err != nil {
			return nil, err
		}
		s.writers = append(s.writers, w)
	}
	return s, nil
}

// Write runs every writer and returns the files written. It stops at the
// first failure.
func (s *Set) Write(ctx context.Context, t *glossary.Table) ([]string, error) {
	var written []string
	for _, w := range s.writers {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		files, err := w.Write(ctx, t)
		if err != nil {
			return written, fmt.Errorf("failed to write %s output: %w", w.Format(), err)
		}
		for _, f := range files {
			s.logger.Debug().Str("format", w.Format()).Str("file", f).Msg("wrote output")
		}
		written = append(written, files...)
	}
	return written, nil
}

// SourceURL links a row's source line on GitHub. It returns "" when repo
// is empty.
func SourceURL(repo, branch, file string, line int) string {
	if repo == "" {
		return ""
	}
	return "https://github.com/" + repo + "/blob/" + branch + "/" + file + "#L" + strconv.Itoa(line)
}

func assetsDir(opts Options) (string, error) {
	dir := filepath.Join(opts.Dir, AssetsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}

// writeFileAtomic writes data next to path and renames it into place so
// readers never see a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
