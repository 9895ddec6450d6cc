package rotation

import "errors"

var (
	ErrEmptySequence = errors.New("rotation: sequence is empty")
	ErrChunkSize     = errors.New("rotation: chunk size must be positive")
	ErrWorkerCount   = errors.New("rotation: worker count must be positive")
)

// Config carries the three values that define a run: the shared circular
// sequence, the number of bytes consumed per turn, and the number of workers
// in the rotation.
type Config struct {
	Sequence  []byte
	ChunkSize int
	Workers   int
}

// Validate returns the first configuration error, or nil. It has no side
// effects and may be called any number of times.
func (c Config) Validate() error {
	if len(c.Sequence) == 0 {
		return ErrEmptySequence
	}
	if c.ChunkSize <= 0 {
		return ErrChunkSize
	}
	if c.Workers <= 0 {
		return ErrWorkerCount
	}
	return nil
}
