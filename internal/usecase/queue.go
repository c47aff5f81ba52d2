package usecase

import (
	"context"
	"sync"
	"time"

	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/metrics"
)

// QueueJob is one whole search-expansion-and-aggregation run
type QueueJob func(ctx context.Context)

type queueEntry struct {
	run           QueueJob
	enqueuedAt    time.Time
	chatID        int64
	wantsProgress bool
}

// DispatchQueue serializes interactive search jobs against a fixed cooldown
// so the aggregate volume from many users cannot trip upstream rate
// limiting, which per-request retries alone cannot prevent. Exactly one job
// is in flight at a time; FIFO order is preserved.
type DispatchQueue struct {
	mu       sync.Mutex
	pending  []queueEntry
	inFlight bool
	lastDone time.Time

	tick     time.Duration
	cooldown time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewDispatchQueue creates a new dispatch queue
func NewDispatchQueue(tick, cooldown time.Duration, log logger.Logger, m *metrics.Metrics) *DispatchQueue {
	return &DispatchQueue{
		tick:     tick,
		cooldown: cooldown,
		logger:   log,
		metrics:  m,
	}
}

// Start runs the background tick until the context is cancelled
func (q *DispatchQueue) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(q.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				q.dispatch(ctx)
			}
		}
	}()
}

// Enqueue appends a job and returns its 0-based queue position plus the
// estimated wait before it starts
func (q *DispatchQueue) Enqueue(job QueueJob, chatID int64, wantsProgress bool) (position int, wait time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	position = len(q.pending)
	q.pending = append(q.pending, queueEntry{
		run:           job,
		enqueuedAt:    time.Now(),
		chatID:        chatID,
		wantsProgress: wantsProgress,
	})
	if q.metrics != nil {
		q.metrics.QueueDepth.Set(float64(len(q.pending)))
	}

	wait = time.Duration(position) * q.cooldown
	if remaining := q.cooldown - time.Since(q.lastDone); !q.lastDone.IsZero() && remaining > 0 {
		wait += remaining
	}
	return position, wait
}

// Len returns the number of pending jobs
func (q *DispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *DispatchQueue) dispatch(ctx context.Context) {
	q.mu.Lock()
	if q.inFlight || len(q.pending) == 0 || time.Since(q.lastDone) < q.cooldown {
		q.mu.Unlock()
		return
	}
	entry := q.pending[0]
	q.pending = q.pending[1:]
	q.inFlight = true
	if q.metrics != nil {
		q.metrics.QueueDepth.Set(float64(len(q.pending)))
	}
	q.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				q.logger.Error("search job panicked", "panic", r)
			}
			q.mu.Lock()
			q.inFlight = false
			q.lastDone = time.Now()
			q.mu.Unlock()
		}()
		q.logger.Info("dispatching search job",
			"chatId", entry.chatID,
			"queuedFor", time.Since(entry.enqueuedAt).String())
		entry.run(ctx)
	}()
}
