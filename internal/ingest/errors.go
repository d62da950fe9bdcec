package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding marks a file whose content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")

	// ErrBuildFailed is returned when deduplication or table construction
	// fails. It is the only error that aborts a run; the published table
	// is left untouched.
	ErrBuildFailed = errors.New("glossary build failed")
)

// UnreadableFileError reports a file that was skipped because it could not
// be read or decoded. It never aborts a run.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable file %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}
