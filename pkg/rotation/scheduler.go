// Package rotation implements a cooperative turn scheduler: a fixed set of
// workers consumes fixed-size chunks of a circular byte sequence in strict
// registration order, one worker at a time.
package rotation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered  = errors.New("rotation: worker already registered")
	ErrRegistrationClosed = errors.New("rotation: registration closed")
	ErrUnknownWorker      = errors.New("rotation: unknown worker")
)

// Sink receives one emission per turn: the acting worker's slot in the
// rotation table and the chunk it consumed. Emit is called inside the
// scheduler's critical section, so emissions arrive in strict turn order.
type Sink interface {
	Emit(worker int, chunk []byte) error
}

// Scheduler serializes access to a circular byte sequence in strict
// registration order. A single mutex guards all mutable state and a single
// condition variable is broadcast after every turn, letting each waiter
// re-check whether its slot has come up.
type Scheduler struct {
	cfg     Config
	out     Sink
	barrier *Barrier

	mu     sync.Mutex
	cond   *sync.Cond
	order  []uuid.UUID       // rotation table, registration order
	slots  map[uuid.UUID]int // identity -> position in order
	turn   int               // active slot, index into order
	cursor int               // next read position in cfg.Sequence
}

// NewScheduler validates cfg and returns a scheduler accepting
// registrations. out may be nil to discard turn output.
func NewScheduler(cfg Config, out Sink) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		cfg:     cfg,
		out:     out,
		barrier: NewBarrier(cfg.Workers),
		slots:   make(map[uuid.UUID]int, cfg.Workers),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Register appends id to the rotation table and returns its slot, the
// worker's permanent position in the turn order. Registering the same
// identity twice fails with ErrAlreadyRegistered; registering once the table
// is full fails with ErrRegistrationClosed.
func (s *Scheduler) Register(id uuid.UUID) (int, error) {
	s.mu.Lock()
	if _, dup := s.slots[id]; dup {
		s.mu.Unlock()
		return 0, ErrAlreadyRegistered
	}
	if len(s.order) == s.cfg.Workers {
		s.mu.Unlock()
		return 0, ErrRegistrationClosed
	}
	slot := len(s.order)
	s.order = append(s.order, id)
	s.slots[id] = slot
	s.cond.Broadcast()
	s.mu.Unlock()

	s.barrier.Arrive()
	return slot, nil
}

// AwaitReady blocks until every expected worker has registered or ctx is
// done.
func (s *Scheduler) AwaitReady(ctx context.Context) error {
	return s.barrier.Wait(ctx)
}

// Order returns a copy of the rotation table in turn order.
func (s *Scheduler) Order() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := make([]uuid.UUID, len(s.order))
	copy(order, s.order)
	return order
}

// TakeTurn blocks until it is id's turn, consumes one chunk, advances the
// cursor and the turn pointer, and wakes all waiters. The chunk is returned
// to the caller and, when a sink is configured, emitted inside the critical
// section. If ctx ends before the turn comes up, the ctx error is returned
// and the rotation is left untouched.
func (s *Scheduler) TakeTurn(ctx context.Context, id uuid.UUID) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cond.Broadcast()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrUnknownWorker
	}

	// Turns may not begin against a partial table: a slot computed before
	// every worker has registered would make the rotation order depend on
	// registration timing.
	for len(s.order) < s.cfg.Workers || s.turn != slot {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.cond.Wait()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunk := s.readChunk()
	s.cursor = (s.cursor + s.cfg.ChunkSize) % len(s.cfg.Sequence)
	s.turn = (s.turn + 1) % s.cfg.Workers
	s.cond.Broadcast()

	if s.out != nil {
		if err := s.out.Emit(slot, chunk); err != nil {
			return chunk, fmt.Errorf("rotation: emit turn: %w", err)
		}
	}
	return chunk, nil
}

// readChunk copies ChunkSize bytes starting at cursor, wrapping past the end
// of the sequence as many times as needed. Caller holds mu.
func (s *Scheduler) readChunk() []byte {
	seq := s.cfg.Sequence
	chunk := make([]byte, s.cfg.ChunkSize)
	for i := range chunk {
		chunk[i] = seq[(s.cursor+i)%len(seq)]
	}
	return chunk
}
