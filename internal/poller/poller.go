package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
	"github.com/preston-bernstein/mlb-gif-service/internal/queue"
	"github.com/preston-bernstein/mlb-gif-service/internal/timeutil"
)

const (
	defaultInterval     = 120 * time.Second
	defaultCycleTimeout = 60 * time.Second
	defaultGameTTL      = 24 * time.Hour
)

// GameStore is the part of the store a poll cycle writes to.
type GameStore interface {
	GetGame(id string) (domaingames.Game, bool)
	UpsertGame(snapshot domaingames.Game) domaingames.Game
	EvictStale(olderThan time.Duration) int
}

// Enqueuer accepts qualifying plays for automatic production.
type Enqueuer interface {
	Enqueue(item queue.Item) queue.EnqueueResult
}

// Config wires a Poller. Tracker and Queue are both required for automatic production.
type Config struct {
	Source       providers.GameSource
	Store        GameStore
	Logger       *slog.Logger
	Recorder     *metrics.Recorder
	Interval     time.Duration
	CycleTimeout time.Duration
	GameTTL      time.Duration
	Location     *time.Location
	Tracker      *Tracker
	Queue        Enqueuer

	// OnEnqueued is called for every play the tracker queued.
	OnEnqueued func(queue.Item)
	// Retry re-offers failed tracked plays whose scheduled retry never reached the queue.
	Retry RetryPolicy
}

// RetryPolicy decides when a failed tracked play is offered to the queue again.
// A nil Retryable disables re-offering.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(code string) bool
}

func (r RetryPolicy) due(play domaingames.Play, now time.Time) bool {
	if r.Retryable == nil || !r.Retryable(play.FailureReason) {
		return false
	}
	return play.RetryDue(now, r.Delay, r.MaxAttempts)
}

// Poller refreshes today's games and plays on an interval.
type Poller struct {
	source       providers.GameSource
	store        GameStore
	logger       *slog.Logger
	metrics      *metrics.Recorder
	interval     time.Duration
	cycleTimeout time.Duration
	gameTTL      time.Duration
	loc          *time.Location
	tracker      *Tracker
	queue        Enqueuer
	onEnqueued   func(queue.Item)
	retry        RetryPolicy
	now          func() time.Time

	runMu   sync.Mutex
	running bool
	stop    chan struct{}
	exited  chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	Running             bool
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastGameCount       int
	LastGameErrors      int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = defaultCycleTimeout
	}
	if cfg.GameTTL <= 0 {
		cfg.GameTTL = defaultGameTTL
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Retry.Delay <= 0 {
		cfg.Retry.Delay = queue.DefaultRetryDelay
	}
	return &Poller{
		source:       cfg.Source,
		store:        cfg.Store,
		logger:       cfg.Logger,
		metrics:      cfg.Recorder,
		interval:     cfg.Interval,
		cycleTimeout: cfg.CycleTimeout,
		gameTTL:      cfg.GameTTL,
		loc:          cfg.Location,
		tracker:      cfg.Tracker,
		queue:        cfg.Queue,
		onEnqueued:   cfg.OnEnqueued,
		retry:        cfg.Retry,
		now:          time.Now,
	}
}

// Start begins polling until ctx is cancelled or Stop is called. It is a no-op while running.
func (p *Poller) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.exited = make(chan struct{})
	go p.loop(ctx, p.stop, p.exited)
}

// Stop halts the loop after any in-progress cycle and waits for it to exit or ctx to expire.
// It is a no-op when the poller is not running.
func (p *Poller) Stop(ctx context.Context) error {
	p.runMu.Lock()
	if !p.running {
		p.runMu.Unlock()
		return nil
	}
	p.running = false
	close(p.stop)
	exited := p.exited
	p.runMu.Unlock()

	select {
	case <-exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.running
}

func (p *Poller) loop(ctx context.Context, stop <-chan struct{}, exited chan struct{}) {
	defer func() {
		p.runMu.Lock()
		if p.exited == exited {
			p.running = false
		}
		p.runMu.Unlock()
		close(exited)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info(p.logger, "poller started", logging.FieldDurationMS, p.interval.Milliseconds())
	// Initial fetch to warm data on boot.
	p.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info(p.logger, "poller stopped")
			return
		case <-stop:
			logging.Info(p.logger, "poller stopped")
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle runs one poll detached from the stop signal so it always completes.
func (p *Poller) cycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cycleTimeout)
	defer cancel()
	_ = p.RunOnce(cycleCtx)
}

// RunOnce performs a single poll cycle: list today's games, refresh plays per game,
// offer qualifying plays to the queue, and evict stale games.
func (p *Poller) RunOnce(ctx context.Context) error {
	start := p.now()
	p.recordAttempt(start)
	date := timeutil.TodayIn(start, p.loc)

	listed, err := p.source.ListGames(ctx, date)
	if err != nil {
		p.metrics.RecordPollerCycle(time.Since(start), 0, err)
		logging.Error(p.logger, "poller fetch failed", err,
			logging.FieldDate, date,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return err
	}

	gameErrors, changed, queued := 0, 0, 0
	for _, g := range listed {
		n, q, err := p.refreshGame(ctx, g)
		if err != nil {
			gameErrors++
			logging.Warn(p.logger, "poller game refresh failed",
				logging.FieldGameID, g.ID,
				"error", err,
			)
			continue
		}
		changed += n
		queued += q
	}
	evicted := p.store.EvictStale(p.gameTTL)

	p.metrics.RecordPollerCycle(time.Since(start), gameErrors, nil)
	p.recordSuccess(start, len(listed), gameErrors)
	logging.Info(p.logger, "poller refreshed games",
		logging.FieldDate, date,
		logging.FieldCount, len(listed),
		"changed_plays", changed,
		"queued_plays", queued,
		"game_errors", gameErrors,
		"evicted", evicted,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// refreshGame merges one listed game into the store and returns how many plays were new
// or changed and how many were queued.
func (p *Poller) refreshGame(ctx context.Context, listed domaingames.Game) (int, int, error) {
	listed.Plays = nil
	if listed.Status == domaingames.StatusScheduled || listed.Status == domaingames.StatusPostponed {
		p.store.UpsertGame(listed)
		return 0, 0, nil
	}

	plays, err := p.source.ListPlays(ctx, listed.ID)
	if err != nil {
		// Keep the score line fresh even when plays are unavailable.
		p.store.UpsertGame(listed)
		return 0, 0, err
	}

	existing, _ := p.store.GetGame(listed.ID)
	fresh := diffPlays(existing, plays)
	observed := p.now()
	for i := range fresh {
		fresh[i].GameID = listed.ID
		fresh[i].ImpactScore = domaingames.ImpactScore(fresh[i])
		if fresh[i].ObservedAt.IsZero() {
			fresh[i].ObservedAt = observed
		}
	}
	listed.Plays = fresh
	merged := p.store.UpsertGame(listed)

	return len(fresh), p.offer(merged), nil
}

// diffPlays returns the incoming plays that are unknown to existing or whose content changed.
// Plays already trimmed from the store and delivered plays are never fresh.
func diffPlays(existing domaingames.Game, incoming []domaingames.Play) []domaingames.Play {
	out := make([]domaingames.Play, 0, len(incoming))
	for _, play := range incoming {
		prev, ok := existing.PlayByID(play.ID)
		switch {
		case !ok && play.AtBatIndex < existing.RetainedFrom:
			continue
		case ok && prev.Status == domaingames.PlayDelivered:
			continue
		case ok && prev.SameContent(play):
			continue
		}
		out = append(out, play)
	}
	return out
}

func (p *Poller) offer(g domaingames.Game) int {
	if p.tracker == nil || p.queue == nil {
		return 0
	}
	queued := 0
	now := p.now()
	for _, play := range g.Plays {
		retry := p.retry.due(play, now)
		if (play.Status != domaingames.PlayUnseen && !retry) || !p.tracker.Qualifies(g, play) {
			continue
		}
		item := queue.Item{GameID: g.ID, PlayID: play.ID}
		if p.queue.Enqueue(item) != queue.Enqueued {
			continue
		}
		queued++
		if retry {
			logging.Info(p.logger, "failed play re-offered",
				logging.FieldGameID, g.ID,
				logging.FieldPlayID, play.ID,
				logging.FieldAttempt, play.Attempts,
				"reason", play.FailureReason,
			)
			continue
		}
		logging.Info(p.logger, "tracked play detected",
			logging.FieldGameID, g.ID,
			logging.FieldPlayID, play.ID,
			"event", play.Event,
			"batter", play.Batter,
		)
		if p.onEnqueued != nil {
			p.onEnqueued(item)
		}
	}
	return queued
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, games, gameErrors int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastGameCount = games
	p.status.LastGameErrors = gameErrors
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	s := p.status
	p.statusMu.RUnlock()
	s.Running = p.Running()
	return s
}
