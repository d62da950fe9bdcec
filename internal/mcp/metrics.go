package mcp

import (
	"sync"
	"time"
)

// ReloadMetrics tracks glossary refreshes made by the server.
// All methods are safe for concurrent use.
type ReloadMetrics struct {
	lastReloadTime     time.Time
	lastReloadDuration time.Duration
	lastReloadError    string
	totalReloads       int64
	successfulReloads  int64
	failedReloads      int64
	currentEntryCount  int
	mu                 sync.RWMutex
}

// MetricsSnapshot is an immutable copy of reload metrics.
type MetricsSnapshot struct {
	LastReloadTime     time.Time     `json:"last_reload_time"`
	LastReloadDuration time.Duration `json:"last_reload_duration_ns"`
	LastReloadError    string        `json:"last_reload_error,omitempty"`
	TotalReloads       int64         `json:"total_reloads"`
	SuccessfulReloads  int64         `json:"successful_reloads"`
	FailedReloads      int64         `json:"failed_reloads"`
	CurrentEntryCount  int           `json:"current_entry_count"`
}

// NewReloadMetrics creates a new ReloadMetrics instance with zero values.
func NewReloadMetrics() *ReloadMetrics {
	return &ReloadMetrics{}
}

// RecordReload records the outcome of a refresh. entryCount is the size of
// the table published afterwards, which a failed refresh leaves unchanged.
func (m *ReloadMetrics) RecordReload(duration time.Duration, err error, entryCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastReloadTime = time.Now()
	m.lastReloadDuration = duration
	m.totalReloads++
	m.currentEntryCount = entryCount

	if err != nil {
		m.failedReloads++
		m.lastReloadError = err.Error()
	} else {
		m.successfulReloads++
		m.lastReloadError = ""
	}
}

// GetMetrics returns a snapshot of the current metrics.
func (m *ReloadMetrics) GetMetrics() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		LastReloadTime:     m.lastReloadTime,
		LastReloadDuration: m.lastReloadDuration,
		LastReloadError:    m.lastReloadError,
		TotalReloads:       m.totalReloads,
		SuccessfulReloads:  m.successfulReloads,
		FailedReloads:      m.failedReloads,
		CurrentEntryCount:  m.currentEntryCount,
	}
}
