package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
)

const DefaultRetryDelay = 30 * time.Second

// Producer runs one production.
type Producer interface {
	Produce(ctx context.Context, gameID, playID string) pipeline.Result
}

// Consumer drains a ScoringQueue into a Producer one item at a time.
type Consumer struct {
	queue      *ScoringQueue
	producer   Producer
	retryDelay time.Duration
	logger     *slog.Logger
	// OnResult, when set, sees every production result.
	OnResult func(pipeline.Result)
}

// NewConsumer builds a consumer; failed retryable productions are re-queued after retryDelay.
func NewConsumer(q *ScoringQueue, producer Producer, retryDelay time.Duration, logger *slog.Logger) *Consumer {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Consumer{
		queue:      q,
		producer:   producer,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Run processes items until ctx is cancelled. Cancellation is observed between
// items; a production that has started runs to completion.
func (c *Consumer) Run(ctx context.Context) {
	for {
		item, err := c.queue.Dequeue(ctx)
		if err != nil {
			return
		}
		res := c.producer.Produce(context.WithoutCancel(ctx), item.GameID, item.PlayID)
		if c.OnResult != nil {
			c.OnResult(res)
		}
		if res.Retryable() {
			c.scheduleRetry(ctx, item, res)
		}
	}
}

func (c *Consumer) scheduleRetry(ctx context.Context, item Item, res pipeline.Result) {
	logging.Info(c.logger, "scheduling automatic retry",
		logging.FieldGameID, item.GameID,
		logging.FieldPlayID, item.PlayID,
		logging.FieldStage, string(res.Stage),
		"delay_ms", c.retryDelay.Milliseconds(),
	)
	time.AfterFunc(c.retryDelay, func() {
		if ctx.Err() != nil {
			return
		}
		c.queue.Enqueue(item)
	})
}
