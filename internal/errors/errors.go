// Package errors defines the failure taxonomy for clone operations and a
// wrapper that attaches operation context to underlying errors.
package errors

import (
	"errors"
	"fmt"
)

// Failure conditions a clone can terminate with. Components wrap these with
// fmt.Errorf("%w: ...") so callers can match them with errors.Is.
var (
	// ErrDestinationConflict indicates the destination exists as a file or a non-empty directory
	ErrDestinationConflict = errors.New("destination conflict")

	// ErrUnsupportedSource indicates a remote URL whose host is not GitHub
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrMalformedReference indicates a GitHub URL without owner and repository segments
	ErrMalformedReference = errors.New("malformed repository reference")

	// ErrDownloadFailure indicates a snapshot download that failed on every branch candidate
	ErrDownloadFailure = errors.New("download failure")

	// ErrCorruptArchive indicates a payload that is not a valid ZIP archive
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrUnexpectedLayout indicates an archive without exactly one top-level directory
	ErrUnexpectedLayout = errors.New("unexpected archive layout")

	// ErrSourceNotFound indicates a local source path that does not exist
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourceNotADirectory indicates a local source path that is not a directory
	ErrSourceNotADirectory = errors.New("source is not a directory")

	// ErrIOFailure indicates a filesystem operation that failed
	ErrIOFailure = errors.New("i/o failure")
)

var taxonomy = []error{
	ErrDestinationConflict,
	ErrUnsupportedSource,
	ErrMalformedReference,
	ErrDownloadFailure,
	ErrCorruptArchive,
	ErrUnexpectedLayout,
	ErrSourceNotFound,
	ErrSourceNotADirectory,
	ErrIOFailure,
}

// Fatal reports whether err belongs to the clone failure taxonomy.
func Fatal(err error) bool {
	for _, sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// OperationError represents an error that occurred during a clone operation
type OperationError struct {
	Op  string // The operation being performed
	Err error  // The underlying error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// New creates a new OperationError
func New(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// Is implements error matching for OperationError
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}
