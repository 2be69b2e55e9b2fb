package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent relay failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSchema indicates an unknown wire schema.
	ErrUnsupportedSchema = errors.New("unsupported schema")

	// ErrClipboardUnavailable indicates the host clipboard cannot be read.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// Pipeline Errors.

	// ErrEncoding indicates the clipboard item could not be serialised.
	ErrEncoding = errors.New("encoding failed")

	// ErrMissingTimestamp indicates the user copy time is absent or not numeric
	// and the active schema cannot be built without it.
	ErrMissingTimestamp = errors.New("missing timestamp")

	// ErrNetwork indicates the request could not be delivered.
	ErrNetwork = errors.New("network failure")

	// ErrRemoteStatus indicates the remote answered with a non-success status.
	ErrRemoteStatus = errors.New("remote rejected request")

	// Dispatch Errors.

	// ErrQueueFull indicates the dispatch queue cannot take more items.
	ErrQueueFull = errors.New("dispatch queue full")

	// ErrDispatcherStopped indicates the dispatcher is not accepting items.
	ErrDispatcherStopped = errors.New("dispatcher stopped")
)

// RemoteStatusError carries the HTTP status of a rejected request.
type RemoteStatusError struct {
	StatusCode int
}

// Error implements error.
func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrRemoteStatus, e.StatusCode)
}

// Unwrap lets errors.Is match ErrRemoteStatus.
func (e *RemoteStatusError) Unwrap() error {
	return ErrRemoteStatus
}
