package mcp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/ingest"
	"github.com/mvp-joe/ubidoc/internal/logging"
)

// Glossary is what the tools read from.
type Glossary interface {
	Snapshot() *ingest.Snapshot
	Search(ctx context.Context, query string, opts glossary.SearchOptions) ([]glossary.SearchHit, error)
	Metrics() MetricsSnapshot
	SourceURL(file string, line int) string
}

// GlossaryService serves the store's published table and refreshes it from
// discovery. The ranked index is rebuilt lazily when the table changes.
type GlossaryService struct {
	store     *ingest.Store
	discovery *ingest.Discovery
	metrics   *ReloadMetrics
	logger    *logging.Logger
	linker    func(file string, line int) string

	// mu guards index and serializes searches against its replacement.
	mu    sync.Mutex
	index *glossary.SearchIndex
}

// ServiceOptions configures a GlossaryService.
type ServiceOptions struct {
	Store *ingest.Store
	// Discovery is required by Reload only.
	Discovery *ingest.Discovery
	Logger    *logging.Logger
	// SourceURL links rows to their source; nil disables links.
	SourceURL func(file string, line int) string
}

// NewGlossaryService creates a service over opts.Store.
func NewGlossaryService(opts ServiceOptions) *GlossaryService {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &GlossaryService{
		store:     opts.Store,
		discovery: opts.Discovery,
		metrics:   NewReloadMetrics(),
		logger:    opts.Logger,
		linker:    opts.SourceURL,
	}
}

// Reload re-discovers and re-ingests the tree. On failure the published
// table stays in place.
func (s *GlossaryService) Reload(ctx context.Context) error {
	if s.discovery == nil {
		return errors.New("no discovery configured")
	}
	start := time.Now()
	_, err := s.store.RefreshFrom(ctx, s.discovery)
	s.metrics.RecordReload(time.Since(start), err, s.store.Table().Len())
	if err != nil {
		s.logger.Error().Err(err).Msg("reload failed, keeping previous glossary")
		return err
	}
	return nil
}

// Snapshot returns the published snapshot.
func (s *GlossaryService) Snapshot() *ingest.Snapshot {
	return s.store.Snapshot()
}

// Search runs a ranked query over the published table.
func (s *GlossaryService) Search(ctx context.Context, query string, opts glossary.SearchOptions) ([]glossary.SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.store.Table()
	if s.index == nil || s.index.Table() != table {
		index, err := glossary.NewSearchIndex(ctx, table)
		if err != nil {
			return nil, err
		}
		if s.index != nil {
			if err := s.index.Close(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to close previous search index")
			}
		}
		s.index = index
		s.logger.Debug().Int("rows", table.Len()).Msg("rebuilt search index")
	}
	return s.index.Search(ctx, query, opts)
}

// Metrics returns reload metrics.
func (s *GlossaryService) Metrics() MetricsSnapshot {
	return s.metrics.GetMetrics()
}

// SourceURL links a source line, or returns "".
func (s *GlossaryService) SourceURL(file string, line int) string {
	if s.linker == nil {
		return ""
	}
	return s.linker(file, line)
}

// Close releases the search index.
func (s *GlossaryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}
