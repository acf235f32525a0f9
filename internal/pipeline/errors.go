package pipeline

import "github.com/dgallion1/mdsplit/internal/document"

// Input errors are reported before any scanning happens.
var (
	ErrInputNotFound     = document.ErrNotFound
	ErrUnsupportedFormat = document.ErrUnsupportedFormat
)

// ProcessingError wraps a failure that happened after the input was accepted:
// reading, scanning, or writing an output.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
