package workspace

import "errors"

var (
	// ErrNoFileSelected is returned when a selection event carries no file
	ErrNoFileSelected = errors.New("no file selected")

	// ErrClosed is returned when a completion arrives after the workspace was closed
	ErrClosed = errors.New("workspace closed")

	// ErrNothingToRetry is returned by Retry when no retryable notice is set
	ErrNothingToRetry = errors.New("nothing to retry")

	// ErrCache wraps failures of the persistent cache
	ErrCache = errors.New("file cache error")
)
