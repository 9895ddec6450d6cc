package rotation

import (
	"context"
	"sync"
)

// Barrier blocks participants until an expected number of arrivals has been
// recorded. Unlike a cyclic barrier it opens exactly once and stays open.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	expect  int
	arrived int
}

// NewBarrier creates a barrier that opens after expect arrivals.
func NewBarrier(expect int) *Barrier {
	b := &Barrier{expect: expect}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Arrive records one arrival and wakes every waiter so each can re-check
// whether the barrier has opened.
func (b *Barrier) Arrive() {
	b.mu.Lock()
	b.arrived++
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Wait blocks until the barrier has opened or ctx is done, re-checking the
// condition after every wakeup.
func (b *Barrier) Wait(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		// Broadcast must not race ahead of a waiter that has checked ctx
		// but not yet parked, so take the lock first.
		b.mu.Lock()
		defer b.mu.Unlock()
		b.cond.Broadcast()
	})
	defer stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	for b.arrived < b.expect {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.cond.Wait()
	}
	return nil
}
