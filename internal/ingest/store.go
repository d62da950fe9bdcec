package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

// Snapshot is one published table with the diagnostics of the run that
// built it.
type Snapshot struct {
	Table       *glossary.Table
	Diagnostics *Diagnostics
	// Generation increases by one with every publication.
	Generation uint64
}

// Store publishes the current glossary table. Readers always observe a
// complete table: a refresh builds the replacement off to the side and
// swaps a single pointer.
type Store struct {
	ingester *Ingester
	current  atomic.Pointer[Snapshot]

	// refreshMu serializes refreshes so publications follow call order.
	refreshMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []func(*Snapshot)
}

// NewStore creates a store publishing an empty table.
func NewStore(in *Ingester) *Store {
	s := &Store{ingester: in}
	s.current.Store(&Snapshot{Table: glossary.Build(nil), Diagnostics: &Diagnostics{}})
	return s
}

// Snapshot returns the currently published snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Table returns the currently published table.
func (s *Store) Table() *glossary.Table {
	return s.current.Load().Table
}

// OnPublish registers fn to run after each successful refresh, on the
// refreshing goroutine.
func (s *Store) OnPublish(fn func(*Snapshot)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Refresh ingests sources and publishes the result. On error, including
// cancellation, the published table is left untouched.
func (s *Store) Refresh(ctx context.Context, sources []Source) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	res, err := s.ingester.Run(ctx, sources)
	if err != nil {
		return nil, err
	}
	// A run that finished after cancellation is discarded as well.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := &Snapshot{
		Table:       res.Table,
		Diagnostics: res.Diagnostics,
		Generation:  s.current.Load().Generation + 1,
	}
	s.current.Store(next)

	s.listenersMu.RLock()
	listeners := append([]func(*Snapshot){}, s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(next)
	}
	return next, nil
}

// RefreshFrom discovers the current source files and refreshes from them.
func (s *Store) RefreshFrom(ctx context.Context, d *Discovery) (*Snapshot, error) {
	sources, err := d.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover sources: %w", err)
	}
	return s.Refresh(ctx, sources)
}
