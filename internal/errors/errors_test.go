package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			op:       "clone",
			err:      errors.New("repository not found"),
			expected: "clone: repository not found",
		},
		{
			name:     "without underlying error",
			op:       "fetch",
			err:      nil,
			expected: "fetch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opErr := &OperationError{
				Op:  tt.op,
				Err: tt.err,
			}
			if got := opErr.Error(); got != tt.expected {
				t.Errorf("OperationError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	opErr := &OperationError{
		Op:  "extract",
		Err: underlying,
	}

	if got := opErr.Unwrap(); got != underlying {
		t.Errorf("OperationError.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestNew(t *testing.T) {
	op := "download"
	err := errors.New("network error")

	opErr := New(op, err)

	if opErr.Op != op {
		t.Errorf("New() Op = %v, want %v", opErr.Op, op)
	}
	if opErr.Err != err {
		t.Errorf("New() Err = %v, want %v", opErr.Err, err)
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{
			name:  "bare sentinel",
			err:   ErrDestinationConflict,
			fatal: true,
		},
		{
			name:  "wrapped sentinel",
			err:   fmt.Errorf("%w: '/tmp/x' already exists and is not empty", ErrDestinationConflict),
			fatal: true,
		},
		{
			name:  "sentinel inside operation error",
			err:   New("clone", fmt.Errorf("%w: all branch candidates failed", ErrDownloadFailure)),
			fatal: true,
		},
		{
			name:  "unrelated error",
			err:   errors.New("something else"),
			fatal: false,
		},
		{
			name:  "nil error",
			err:   nil,
			fatal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fatal(tt.err); got != tt.fatal {
				t.Errorf("Fatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestTaxonomySentinelsAreDistinct(t *testing.T) {
	for i, a := range taxonomy {
		for j, b := range taxonomy {
			if i != j && errors.Is(a, b) {
				t.Errorf("taxonomy entries %d and %d match each other", i, j)
			}
		}
	}
}
