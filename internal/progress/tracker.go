package progress

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Tracker interface defines methods for tracking operation progress
type Tracker interface {
	Start(operation string) *Operation
	Update(current, total int64)
	Complete()
	Error(err error)
}

// Operation represents a tracked operation
type Operation struct {
	Name        string
	StartTime   time.Time
	Status      string
	LastCurrent int64
	LastTotal   int64
}

// DefaultTracker provides a basic implementation of the Tracker interface.
// It records state without producing output.
type DefaultTracker struct {
	CurrentOperation *Operation
}

// Start begins tracking a new operation
func (t *DefaultTracker) Start(operation string) *Operation {
	t.CurrentOperation = &Operation{
		Name:      operation,
		StartTime: time.Now(),
		Status:    "in_progress",
	}
	return t.CurrentOperation
}

// Update updates the progress of the current operation
func (t *DefaultTracker) Update(current, total int64) {
	if t.CurrentOperation == nil {
		return
	}
	t.CurrentOperation.LastCurrent = current
	t.CurrentOperation.LastTotal = total
}

// Complete marks the operation as completed
func (t *DefaultTracker) Complete() {
	if t.CurrentOperation != nil {
		t.CurrentOperation.Status = "completed"
	}
}

// Error marks the operation as failed with an error
func (t *DefaultTracker) Error(err error) {
	if t.CurrentOperation != nil {
		t.CurrentOperation.Status = "failed"
	}
}

// ConsoleTracker implements Tracker for console output
type ConsoleTracker struct {
	w                io.Writer
	currentOperation *Operation
	lastPercent      int
}

// NewConsoleTracker creates a new console-based progress tracker writing to w.
// A nil writer defaults to stdout.
func NewConsoleTracker(w io.Writer) *ConsoleTracker {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleTracker{w: w}
}

// Start begins tracking a new operation
func (t *ConsoleTracker) Start(operation string) *Operation {
	t.currentOperation = &Operation{
		Name:      operation,
		StartTime: time.Now(),
		Status:    "in_progress",
	}
	t.lastPercent = -1
	fmt.Fprintf(t.w, "%s...\n", operation)
	return t.currentOperation
}

// Update prints download progress as a percentage when the total is known.
// Repeated updates within the same percent are suppressed.
func (t *ConsoleTracker) Update(current, total int64) {
	if t.currentOperation == nil {
		return
	}
	t.currentOperation.LastCurrent = current
	t.currentOperation.LastTotal = total

	if total <= 0 {
		return
	}
	percent := int(float64(current) / float64(total) * 100)
	if percent == t.lastPercent {
		return
	}
	t.lastPercent = percent
	fmt.Fprintf(t.w, "\r%s: %d%% (%d/%d bytes)", t.currentOperation.Name, percent, current, total)
	if percent >= 100 {
		fmt.Fprintln(t.w)
	}
}

// Complete marks the current operation as completed
func (t *ConsoleTracker) Complete() {
	if t.currentOperation == nil {
		return
	}
	t.currentOperation.Status = "completed"
	t.currentOperation = nil
}

// Error marks the current operation as failed
func (t *ConsoleTracker) Error(err error) {
	if t.currentOperation == nil {
		return
	}
	t.currentOperation.Status = "failed"
	fmt.Fprintf(t.w, "\nError: %s - %v\n", t.currentOperation.Name, err)
	t.currentOperation = nil
}
