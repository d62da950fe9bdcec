package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/ubidoc/internal/ingest"
)

// CLIProgressReporter draws a progress bar while files are scanned and
// prints a summary when a run completes.
type CLIProgressReporter struct {
	out     io.Writer
	mu      sync.Mutex
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter writing to out.
func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{out: out}
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

// OnFileProcessed is called from worker goroutines.
func (c *CLIProgressReporter) OnFileProcessed(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		_ = c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(diag *ingest.Diagnostics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		_ = c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "✓ Glossary built: %s entries from %s files in %.1fs\n",
		formatNumber(diag.Entries), formatNumber(diag.FilesScanned), diag.Duration.Seconds())
	if n := len(diag.Skipped); n > 0 {
		fmt.Fprintf(c.out, "  Skipped files:       %s\n", formatNumber(n))
	}
	if n := len(diag.Truncated); n > 0 {
		fmt.Fprintf(c.out, "  Unclosed comments:   %s\n", formatNumber(n))
	}
	if n := diag.Superseded; n > 0 {
		fmt.Fprintf(c.out, "  Superseded entries:  %s\n", formatNumber(n))
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
