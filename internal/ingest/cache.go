package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// fileResult is everything one file contributes to a run.
type fileResult struct {
	entries   []glossary.Entry
	truncated []Location
	dropped   []Location
	skipped   *UnreadableFileError
	cached    bool
}

type cacheKey struct {
	path     string
	language scanner.Language
	digest   string
}

// FileCache remembers per-file scan results keyed by path, language and
// content hash, so re-ingesting an unchanged file skips locating and
// parsing. Entries are immutable values, so cached results are shared
// safely between runs.
type FileCache struct {
	cache otter.Cache[cacheKey, fileResult]
}

// NewFileCache creates a cache holding up to capacity files.
func NewFileCache(capacity int) (*FileCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	c, err := otter.MustBuilder[cacheKey, fileResult](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build file cache: %w", err)
	}
	return &FileCache{cache: c}, nil
}

func newCacheKey(src Source, content []byte) cacheKey {
	sum := sha256.Sum256(content)
	return cacheKey{path: src.Path, language: src.Language, digest: hex.EncodeToString(sum[:])}
}

func (c *FileCache) get(key cacheKey) (fileResult, bool) {
	if c == nil {
		return fileResult{}, false
	}
	return c.cache.Get(key)
}

func (c *FileCache) set(key cacheKey, r fileResult) {
	if c == nil {
		return
	}
	c.cache.Set(key, r)
}

// Hits returns how many lookups were served from the cache.
func (c *FileCache) Hits() int64 {
	if c == nil {
		return 0
	}
	return c.cache.Stats().Hits()
}

// Len returns the number of cached files.
func (c *FileCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Size()
}

// Close stops the cache's background work.
func (c *FileCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}
