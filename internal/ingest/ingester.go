// Package ingest runs the glossary pipeline over a set of source files:
// files are scanned in parallel, then deduplicated and built into a table
// in scan order.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/logging"
	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// Options configures an Ingester.
type Options struct {
	// Root is joined with Source.Path when content has to be read.
	Root string
	// Workers bounds parallel file scans. Zero selects runtime.NumCPU().
	Workers int
	// Locator finds documentation comments. Defaults to the lexical locator.
	Locator scanner.Locator
	// Cache, when set, reuses results for unchanged files.
	Cache    *FileCache
	Logger   *logging.Logger
	Progress ProgressReporter
	// ReadFile defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Result is the outcome of a successful run.
type Result struct {
	Table       *glossary.Table
	Diagnostics *Diagnostics
}

// Ingester turns sources into a glossary table. It holds no per-run state
// and may be shared between goroutines.
type Ingester struct {
	root     string
	workers  int
	locator  scanner.Locator
	cache    *FileCache
	logger   *logging.Logger
	progress ProgressReporter
	readFile func(string) ([]byte, error)

	// buildTable is the single-threaded stage after the barrier.
	buildTable func([]glossary.Entry) (*glossary.Table, int)
}

// New creates an Ingester, filling unset options with defaults.
func New(opts Options) *Ingester {
	in := &Ingester{
		root:       opts.Root,
		workers:    opts.Workers,
		locator:    opts.Locator,
		cache:      opts.Cache,
		logger:     opts.Logger,
		progress:   opts.Progress,
		readFile:   opts.ReadFile,
		buildTable: dedupeAndBuild,
	}
	if in.workers <= 0 {
		in.workers = runtime.NumCPU()
	}
	if in.locator == nil {
		in.locator = scanner.NewLexical(scanner.DefaultLookahead)
	}
	if in.logger == nil {
		in.logger = logging.Nop()
	}
	if in.progress == nil {
		in.progress = NoOpProgressReporter{}
	}
	if in.readFile == nil {
		in.readFile = os.ReadFile
	}
	return in
}

func dedupeAndBuild(entries []glossary.Entry) (*glossary.Table, int) {
	kept, superseded := glossary.Dedupe(entries)
	return glossary.Build(kept), superseded
}

// Run scans sources, which are taken in the given order; the same path may
// appear more than once. Per-file failures are recorded in the diagnostics
// and never abort the run. Run returns ctx.Err() when cancelled and
// ErrBuildFailed when the table cannot be built.
func (in *Ingester) Run(ctx context.Context, sources []Source) (*Result, error) {
	start := time.Now()
	diag := &Diagnostics{
		RunID:        uuid.NewString(),
		FilesScanned: len(sources),
	}
	log := in.logger.With().Str("run_id", diag.RunID).Logger()
	log.Debug().Int("files", len(sources)).Int("workers", in.workers).Msg("ingestion started")
	in.progress.OnScanStart(len(sources))

	// Each worker writes only its own slot.
	results := make([]fileResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)
	for i, src := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = in.processFile(src)
			in.progress.OnFileProcessed(src.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []glossary.Entry
	for _, r := range results {
		if r.skipped != nil {
			log.Warn().Err(r.skipped.Err).Str("path", r.skipped.Path).Msg("skipping unreadable file")
			diag.Skipped = append(diag.Skipped, r.skipped)
			continue
		}
		if r.cached {
			diag.CacheHits++
		}
		for _, loc := range r.truncated {
			log.Warn().Str("path", loc.Path).Int("line", loc.Line).Msg("documentation comment is not closed")
		}
		diag.Truncated = append(diag.Truncated, r.truncated...)
		diag.Dropped = append(diag.Dropped, r.dropped...)
		entries = append(entries, r.entries...)
	}

	table, superseded, err := in.build(entries)
	if err != nil {
		log.Error().Err(err).Msg("ingestion failed")
		return nil, err
	}
	diag.Superseded = superseded
	diag.Entries = table.Len()
	diag.Duration = time.Since(start)

	log.Info().
		Int("files", diag.FilesScanned).
		Int("entries", diag.Entries).
		Int("skipped", len(diag.Skipped)).
		Int("truncated", len(diag.Truncated)).
		Int("dropped", len(diag.Dropped)).
		Int("superseded", diag.Superseded).
		Dur("duration", diag.Duration).
		Msg("ingestion complete")
	in.progress.OnComplete(diag)

	return &Result{Table: table, Diagnostics: diag}, nil
}

func (in *Ingester) build(entries []glossary.Entry) (table *glossary.Table, superseded int, err error) {
	defer func() {
		if r := recover(); r != nil {
			table, superseded = nil, 0
			err = fmt.Errorf("%w: %v", ErrBuildFailed, r)
		}
	}()
	table, superseded = in.buildTable(entries)
	return table, superseded, nil
}

func (in *Ingester) processFile(src Source) fileResult {
	if src.Err != nil {
		return fileResult{skipped: &UnreadableFileError{Path: src.Path, Err: src.Err}}
	}
	content := src.Content
	if content == nil {
		data, err := in.readFile(filepath.Join(in.root, filepath.FromSlash(src.Path)))
		if err != nil {
			return fileResult{skipped: &UnreadableFileError{Path: src.Path, Err: err}}
		}
		content = data
	}
	if !utf8.Valid(content) {
		return fileResult{skipped: &UnreadableFileError{Path: src.Path, Err: ErrInvalidEncoding}}
	}

	if in.cache == nil {
		return scanFile(in.locator, src, string(content))
	}
	key := newCacheKey(src, content)
	if r, ok := in.cache.get(key); ok {
		r.cached = true
		return r
	}
	r := scanFile(in.locator, src, string(content))
	in.cache.set(key, r)
	return r
}

// scanFile runs locate, parse and normalize over one file.
func scanFile(loc scanner.Locator, src Source, text string) fileResult {
	var r fileResult
	for b := range loc.Locate(text, src.Language) {
		b.Path = src.Path
		if b.Truncated {
			r.truncated = append(r.truncated, Location{Path: src.Path, Line: b.Line})
		}
		entry, ok := glossary.Normalize(b, scanner.ParseTags(b.Text))
		if !ok {
			r.dropped = append(r.dropped, Location{Path: src.Path, Line: b.Line})
			continue
		}
		r.entries = append(r.entries, entry)
	}
	return r
}
