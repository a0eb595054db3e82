package log

import (
	"io"
	"os"
	"sync"
)

// WriterOutput writes formatted entries to an io.Writer behind a mutex so
// concurrent goroutines never interleave lines.
type WriterOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterOutput wraps an arbitrary writer as an Output.
func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

// NewConsoleOutput returns an Output writing to stderr.
func NewConsoleOutput() *WriterOutput {
	return &WriterOutput{w: os.Stderr}
}

// Write writes one formatted entry.
func (o *WriterOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.w.Write(formatted)
	return err
}

// Close is a no-op for writer-backed outputs.
func (o *WriterOutput) Close() error { return nil }
