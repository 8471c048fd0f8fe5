// Package monitor owns the process-wide monitoring lifecycle: the poll loop, the
// automatic production consumer, and the counters reported on the status endpoint.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
	"github.com/preston-bernstein/mlb-gif-service/internal/poller"
	"github.com/preston-bernstein/mlb-gif-service/internal/queue"
)

// Poller is the lifecycle surface of the poll loop.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Config wires a Monitor. Queue is nil when automatic tracking is disabled.
type Config struct {
	Poller      Poller
	Producer    queue.Producer
	Queue       *queue.ScoringQueue
	RetryDelay  time.Duration
	TrackedTeam string
	Logger      *slog.Logger
}

// Monitor starts and stops background monitoring and counts what it produced.
type Monitor struct {
	poller      Poller
	producer    queue.Producer
	queue       *queue.ScoringQueue
	retryDelay  time.Duration
	trackedTeam string
	logger      *slog.Logger
	now         func() time.Time

	mu           sync.Mutex
	running      bool
	startedAt    time.Time
	cancel       context.CancelFunc
	consumerDone chan struct{}

	detected  atomic.Int64
	created   atomic.Int64
	sent      atomic.Int64
	failures  atomic.Int64
	lastError atomic.Value
}

// Status is a point-in-time view of monitoring.
type Status struct {
	Monitoring        bool
	Tracking          bool
	TrackedTeam       string
	StartedAt         time.Time
	LastCheck         time.Time
	PlaysDetected     int64
	GIFsCreated       int64
	NotificationsSent int64
	Failures          int64
	LastError         string
	QueueDepth        int
	QueueCapacity     int
	Poller            poller.Status
}

func New(cfg Config) *Monitor {
	return &Monitor{
		poller:      cfg.Poller,
		producer:    cfg.Producer,
		queue:       cfg.Queue,
		retryDelay:  cfg.RetryDelay,
		trackedTeam: cfg.TrackedTeam,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Start resets the counters and launches the poller and, when tracking, the queue
// consumer. The work outlives ctx's cancellation; only Stop ends it. No-op while running.
func (m *Monitor) Start(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return false
	}
	m.resetCounters()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.running = true
	m.startedAt = m.now()
	m.cancel = cancel

	m.poller.Start(runCtx)
	if m.queue != nil && m.producer != nil {
		consumer := queue.NewConsumer(m.queue, m, m.retryDelay, m.logger)
		done := make(chan struct{})
		m.consumerDone = done
		go func() {
			defer close(done)
			consumer.Run(runCtx)
		}()
	}
	logging.Info(m.logger, "monitoring started", "tracking", m.queue != nil, "team", m.trackedTeam)
	return true
}

// Stop halts the poller and consumer, letting an in-progress cycle or production finish.
// It waits until both exit or ctx expires. No-op when not running.
func (m *Monitor) Stop(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return false, nil
	}
	m.running = false
	cancel, done := m.cancel, m.consumerDone
	m.cancel, m.consumerDone = nil, nil
	m.mu.Unlock()

	err := m.poller.Stop(ctx)
	cancel()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
		}
	}
	logging.Info(m.logger, "monitoring stopped")
	return true, err
}

// Running reports whether monitoring is on.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Produce runs one production through the wrapped producer and counts the result.
// Manual triggers and the queue consumer both go through here.
func (m *Monitor) Produce(ctx context.Context, gameID, playID string) pipeline.Result {
	res := m.producer.Produce(ctx, gameID, playID)
	m.RecordResult(res)
	return res
}

// RecordDetected counts a play the tracker queued.
func (m *Monitor) RecordDetected(queue.Item) {
	m.detected.Add(1)
}

// RecordResult folds a production result into the counters.
func (m *Monitor) RecordResult(res pipeline.Result) {
	switch res.Outcome {
	case pipeline.OutcomeDelivered:
		m.created.Add(1)
		m.sent.Add(1)
	case pipeline.OutcomeFailed:
		// A GIF that failed to deliver was still created.
		if res.Stage == pipeline.StageDelivering {
			m.created.Add(1)
		}
		m.failures.Add(1)
		m.lastError.Store(res.Reason)
	}
}

// Status reports the monitoring state and counters.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	s := Status{
		Monitoring:  m.running,
		Tracking:    m.queue != nil,
		TrackedTeam: m.trackedTeam,
		StartedAt:   m.startedAt,
	}
	m.mu.Unlock()

	s.PlaysDetected = m.detected.Load()
	s.GIFsCreated = m.created.Load()
	s.NotificationsSent = m.sent.Load()
	s.Failures = m.failures.Load()
	if v, ok := m.lastError.Load().(string); ok {
		s.LastError = v
	}
	if m.queue != nil {
		s.QueueDepth = m.queue.Len()
		s.QueueCapacity = m.queue.Cap()
	}
	if m.poller != nil {
		s.Poller = m.poller.Status()
		s.LastCheck = s.Poller.LastAttempt
	}
	return s
}

func (m *Monitor) resetCounters() {
	m.detected.Store(0)
	m.created.Store(0)
	m.sent.Store(0)
	m.failures.Store(0)
	m.lastError.Store("")
}
