package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TurnRecord is one line of a turn trace.
type TurnRecord struct {
	Turn   int    `json:"turn"`
	Worker int    `json:"worker"`
	Chunk  string `json:"chunk"`
}

// TraceSink accumulates one TurnRecord per emission, numbered in arrival
// order.
type TraceSink struct {
	mu      sync.Mutex
	records []TurnRecord
}

// NewTraceSink creates an empty trace sink.
func NewTraceSink() *TraceSink {
	return &TraceSink{}
}

func (s *TraceSink) Emit(worker int, chunk []byte) error {
	s.mu.Lock()
	s.records = append(s.records, TurnRecord{
		Turn:   len(s.records),
		Worker: worker,
		Chunk:  string(chunk),
	})
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the recorded turns.
func (s *TraceSink) Records() []TurnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]TurnRecord, len(s.records))
	copy(records, s.records)
	return records
}

// SaveTrace writes a turn trace to a JSON-lines file.
func SaveTrace(filename string, records []TurnRecord) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode turn record: %w", err)
		}
	}
	return w.Flush()
}

// LoadTrace reads a turn trace from a JSON-lines file.
func LoadTrace(filename string) ([]TurnRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()

	var records []TurnRecord
	dec := json.NewDecoder(bufio.NewReader(f))
	for dec.More() {
		var r TurnRecord
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode turn record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
