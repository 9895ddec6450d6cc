package rotation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mfcrocker/turnstile/pkg/rotation"
)

func TestBarrierOpens(t *testing.T) {
	b := rotation.NewBarrier(3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Arrive()
			if err := b.Wait(ctx); err != nil {
				t.Errorf("Wait failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestBarrierBlocksUntilFull(t *testing.T) {
	b := rotation.NewBarrier(3)
	b.Arrive()
	b.Arrive()

	// Two of three arrived: the barrier must hold within the wait window.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := b.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestBarrierStaysOpen(t *testing.T) {
	b := rotation.NewBarrier(1)
	b.Arrive()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Late waiters must pass through without blocking.
	for i := 0; i < 3; i++ {
		if err := b.Wait(ctx); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
}

func TestBarrierWaitCancelled(t *testing.T) {
	b := rotation.NewBarrier(2)
	b.Arrive()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Wait(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not observe cancellation")
	}
}
