package mcp

import (
	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/ingest"
)

// Tool result limits.
const (
	DefaultFilterLimit = 200
	MaxFilterLimit     = 5000
	MaxSearchLimit     = 100
)

// RowResult is one glossary row as returned by the tools.
type RowResult struct {
	glossary.Projection
	Line int `json:"line"`
	// URL links the source line when a repository is configured.
	URL string `json:"url,omitempty"`
}

// FilterResponse answers glossary_filter.
type FilterResponse struct {
	Keyword string      `json:"keyword"`
	Context string      `json:"context,omitempty"`
	Rows    []RowResult `json:"rows"`
	// Visible is set in visibility mode: one decision per table row, with
	// Rows holding the whole table.
	Visible   []bool `json:"visible,omitempty"`
	Total     int    `json:"total"`
	Truncated bool   `json:"truncated,omitempty"`
	TableSize int    `json:"table_size"`
}

// ContextCount is a context with its number of rows.
type ContextCount struct {
	Context string `json:"context"`
	Rows    int    `json:"rows"`
}

// ContextsResponse answers glossary_contexts.
type ContextsResponse struct {
	Contexts []ContextCount `json:"contexts"`
	Total    int            `json:"total"`
}

// SearchResult is a ranked row.
type SearchResult struct {
	RowResult
	Score float64 `json:"score"`
}

// SearchResponse answers glossary_search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Context string         `json:"context,omitempty"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// StatusResponse answers glossary_status.
type StatusResponse struct {
	Generation   uint64              `json:"generation"`
	Entries      int                 `json:"entries"`
	Diagnostics  *ingest.Diagnostics `json:"diagnostics"`
	SkippedFiles []string            `json:"skipped_files"`
	Reloads      MetricsSnapshot     `json:"reloads"`
}
