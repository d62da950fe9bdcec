package ingest

import (
	"fmt"
	"time"
)

// Location points at a comment block in a source file.
type Location struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// Diagnostics reports everything a run skipped, truncated or discarded.
type Diagnostics struct {
	RunID        string                 `json:"runId"`
	FilesScanned int                    `json:"filesScanned"`
	Entries      int                    `json:"entries"`
	Skipped      []*UnreadableFileError `json:"-"`
	// Truncated lists documentation comments that never closed.
	Truncated []Location `json:"truncated"`
	// Dropped lists blocks without a derivable term.
	Dropped []Location `json:"dropped"`
	// Superseded counts entries replaced by a later duplicate.
	Superseded int           `json:"superseded"`
	CacheHits  int           `json:"cacheHits"`
	Duration   time.Duration `json:"duration"`
}

// SkippedPaths returns the paths of skipped files in scan order.
func (d *Diagnostics) SkippedPaths() []string {
	paths := make([]string, 0, len(d.Skipped))
	for _, s := range d.Skipped {
		paths = append(paths, s.Path)
	}
	return paths
}

// Summary renders the diagnostic counts on one line.
func (d *Diagnostics) Summary() string {
	return fmt.Sprintf("%d files scanned, %d entries, %d skipped files, %d truncated comments, %d dropped blocks, %d superseded duplicates (%s)",
		d.FilesScanned, d.Entries, len(d.Skipped), len(d.Truncated), len(d.Dropped), d.Superseded, d.Duration.Round(time.Millisecond))
}
