package errors

import (
	"fmt"
	"strings"
)

// LoadError wraps a failure to read or decode an input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error for %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError carries every problem found in a dataset before a run.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidDataset, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDataset
}

// Sentinel errors returned by the loader, CLI and server.
var (
	ErrInvalidDataset    = fmt.Errorf("invalid dataset")
	ErrDecode            = fmt.Errorf("malformed dataset")
	ErrUnsupportedFormat = fmt.Errorf("unsupported output format")
	ErrNoReportAvailable = fmt.Errorf("no run has completed yet")
)
