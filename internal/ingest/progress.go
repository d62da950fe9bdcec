package ingest

// ProgressReporter receives callbacks while a run scans files.
// Implementations can display progress bars, log messages, or remain silent.
// OnFileProcessed is called from worker goroutines.
type ProgressReporter interface {
	// OnScanStart is called before any file is processed.
	OnScanStart(totalFiles int)

	// OnFileProcessed is called after each file is processed.
	OnFileProcessed(path string)

	// OnComplete is called when a run publishes a table.
	OnComplete(diag *Diagnostics)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnScanStart(totalFiles int)   {}
func (NoOpProgressReporter) OnFileProcessed(path string)  {}
func (NoOpProgressReporter) OnComplete(diag *Diagnostics) {}
