// Package worker runs the goroutines that drive a rotation: each worker
// registers with the scheduler, waits behind the startup barrier, then takes
// turns until its budget is spent or its context ends.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mfcrocker/turnstile/pkg/rotation"
)

// Worker is one participant in a rotation. Its identity is fixed at
// construction; its slot in the turn order is assigned when it registers.
type Worker struct {
	ID    uuid.UUID
	sched *rotation.Scheduler
}

// New creates a worker with a fresh identity, bound to sched.
func New(sched *rotation.Scheduler) *Worker {
	return &Worker{ID: uuid.New(), sched: sched}
}

// Run registers the worker, waits until the rotation table is full, then
// takes turns. A budget of zero or less means run until ctx is cancelled.
// It returns the number of turns taken.
func (w *Worker) Run(ctx context.Context, budget int) (int, error) {
	if _, err := w.sched.Register(w.ID); err != nil {
		return 0, fmt.Errorf("worker %s: register: %w", w.ID, err)
	}
	if err := w.sched.AwaitReady(ctx); err != nil {
		return 0, fmt.Errorf("worker %s: await rotation: %w", w.ID, err)
	}

	taken := 0
	for budget <= 0 || taken < budget {
		if _, err := w.sched.TakeTurn(ctx, w.ID); err != nil {
			return taken, fmt.Errorf("worker %s: turn %d: %w", w.ID, taken, err)
		}
		taken++
	}
	return taken, nil
}

// Pool spawns one goroutine per worker and joins them.
type Pool struct {
	workers []*Worker
}

// NewPool creates n workers bound to sched.
func NewPool(sched *rotation.Scheduler, n int) *Pool {
	p := &Pool{workers: make([]*Worker, n)}
	for i := range p.workers {
		p.workers[i] = New(sched)
	}
	return p
}

// Run starts every worker and blocks until all have returned. Context
// cancellation is the normal way to end an unbudgeted run, so ctx errors are
// not reported; the first other failure is.
func (p *Pool) Run(ctx context.Context, budget int) error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	for _, w := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			_, err := w.Run(ctx, budget)
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			mu.Lock()
			if first == nil {
				first = err
			}
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	return first
}
