// Package queue decouples play detection from GIF production.
package queue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
)

const DefaultCapacity = 32

// Item identifies a play awaiting automatic production.
type Item struct {
	GameID string
	PlayID string
}

// EnqueueResult reports what Enqueue did with an item.
type EnqueueResult string

const (
	Enqueued  EnqueueResult = "enqueued"
	Duplicate EnqueueResult = "duplicate"
	Skipped   EnqueueResult = "skipped"
	Dropped   EnqueueResult = "dropped"
)

// Gate admits plays into the queue and is told when one was queued.
type Gate interface {
	Admit(item Item) bool
	Queued(item Item)
}

// ScoringQueue is a bounded FIFO of play ids. Enqueue never blocks.
type ScoringQueue struct {
	items    chan Item
	gate     Gate
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu      sync.Mutex
	pending map[string]struct{}
}

// New constructs a queue holding at most capacity items. gate may be nil.
func New(capacity int, gate Gate, logger *slog.Logger, recorder *metrics.Recorder) *ScoringQueue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ScoringQueue{
		items:    make(chan Item, capacity),
		gate:     gate,
		logger:   logger,
		recorder: recorder,
		pending:  make(map[string]struct{}),
	}
}

// Enqueue adds item unless it is already queued, refused by the gate, or the queue is full.
func (q *ScoringQueue) Enqueue(item Item) EnqueueResult {
	result := q.enqueue(item)
	depth := q.Len()
	q.recorder.RecordQueue(string(result), depth)
	if result == Dropped {
		logging.Warn(q.logger, "scoring queue full, dropping play",
			logging.FieldGameID, item.GameID,
			logging.FieldPlayID, item.PlayID,
			"capacity", cap(q.items),
		)
	}
	return result
}

func (q *ScoringQueue) enqueue(item Item) EnqueueResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.pending[item.PlayID]; ok {
		return Duplicate
	}
	if q.gate != nil && !q.gate.Admit(item) {
		return Skipped
	}
	select {
	case q.items <- item:
		q.pending[item.PlayID] = struct{}{}
	default:
		return Dropped
	}
	if q.gate != nil {
		q.gate.Queued(item)
	}
	return Enqueued
}

// Dequeue blocks until an item is available or ctx is done.
func (q *ScoringQueue) Dequeue(ctx context.Context) (Item, error) {
	select {
	case item := <-q.items:
		q.mu.Lock()
		delete(q.pending, item.PlayID)
		q.mu.Unlock()
		q.recorder.RecordQueue("dequeued", q.Len())
		return item, nil
	case <-ctx.Done():
		return Item{}, ctx.Err()
	}
}

// Len reports how many items are waiting.
func (q *ScoringQueue) Len() int {
	return len(q.items)
}

// Cap reports the queue capacity.
func (q *ScoringQueue) Cap() int {
	return cap(q.items)
}
