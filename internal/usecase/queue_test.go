package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"awardsearch-service/internal/usecase"
	"awardsearch-service/pkg/logger"
)

// ── Enqueue positions and wait estimates ───────────────────────────────────

func TestDispatchQueue_EnqueuePositions(t *testing.T) {
	q := usecase.NewDispatchQueue(5*time.Millisecond, 65*time.Second, logger.NewLogger(), nil)

	noop := func(context.Context) {}
	pos0, wait0 := q.Enqueue(noop, 1, false)
	pos1, wait1 := q.Enqueue(noop, 2, false)
	pos2, _ := q.Enqueue(noop, 3, false)

	if pos0 != 0 || pos1 != 1 || pos2 != 2 {
		t.Errorf("positions = %d, %d, %d, want 0, 1, 2", pos0, pos1, pos2)
	}
	if wait0 != 0 {
		t.Errorf("first job before any run should wait 0, got %v", wait0)
	}
	if wait1 != 65*time.Second {
		t.Errorf("second job should wait one cooldown, got %v", wait1)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

// ── FIFO dispatch with cooldown spacing ────────────────────────────────────

func TestDispatchQueue_FIFOWithCooldown(t *testing.T) {
	cooldown := 60 * time.Millisecond
	q := usecase.NewDispatchQueue(5*time.Millisecond, cooldown, logger.NewLogger(), nil)

	var mu sync.Mutex
	var order []int
	var starts []time.Time
	done := make(chan struct{}, 3)

	job := func(id int) usecase.QueueJob {
		return func(context.Context) {
			mu.Lock()
			order = append(order, id)
			starts = append(starts, time.Now())
			mu.Unlock()
			done <- struct{}{}
		}
	}

	q.Enqueue(job(1), 1, false)
	q.Enqueue(job(2), 2, false)
	q.Enqueue(job(3), 3, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job %d to run", i+1)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("jobs ran in order %v, want [1 2 3]", order)
	}
	// Consecutive dispatches must be separated by at least the cooldown,
	// minus a tick of scheduling slack
	slack := 15 * time.Millisecond
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < cooldown-slack {
			t.Errorf("job %d started %v after job %d, want at least %v", i+1, gap, i, cooldown-slack)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", q.Len())
	}
}

// ── Panic containment ──────────────────────────────────────────────────────

func TestDispatchQueue_PanicDoesNotStall(t *testing.T) {
	q := usecase.NewDispatchQueue(5*time.Millisecond, 10*time.Millisecond, logger.NewLogger(), nil)

	ran := make(chan struct{})
	q.Enqueue(func(context.Context) { panic("boom") }, 1, false)
	q.Enqueue(func(context.Context) { close(ran) }, 2, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("queue stalled after a panicking job")
	}
}
