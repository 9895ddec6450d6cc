// Package sink provides destinations for per-turn output: a line writer
// matching the reference format, a JSONL trace recorder, and a fan-out.
package sink

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives one emission per turn: the acting worker's slot in the
// rotation and the chunk it consumed.
type Sink interface {
	Emit(worker int, chunk []byte) error
}

// WriterSink prints each turn as a "ThreadId N : chunk" line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(worker int, chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "ThreadId %d : %s\n", worker, chunk)
	return err
}

// Multi fans each emission out to every sink in order, stopping at the first
// error.
type Multi []Sink

func (m Multi) Emit(worker int, chunk []byte) error {
	for _, s := range m {
		if err := s.Emit(worker, chunk); err != nil {
			return err
		}
	}
	return nil
}
