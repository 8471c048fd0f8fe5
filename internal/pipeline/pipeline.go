// Package pipeline turns a stored play into a delivered GIF.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/mlb-gif-service/internal/delivery"
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/render"
	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

// PlayStore is the slice of the game store the pipeline needs.
type PlayStore interface {
	FindPlay(gameID, playID string) (domaingames.Game, domaingames.Play, error)
	SetPlayStatus(gameID, playID string, update domaingames.StatusUpdate) (domaingames.Play, error)
}

// Renderer converts a clip into an artifact.
type Renderer interface {
	Render(ctx context.Context, ref video.Ref, opts render.Options) (render.Artifact, error)
}

// Config wires the pipeline's collaborators.
type Config struct {
	Store       PlayStore
	Resolver    video.Resolver
	Renderer    Renderer
	Deliverer   delivery.Deliverer
	Options     render.Options
	MaxAttempts int
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
}

// Pipeline runs RESOLVING -> RENDERING -> DELIVERING for one play at a time per play id.
type Pipeline struct {
	store       PlayStore
	resolver    video.Resolver
	renderer    Renderer
	deliverer   delivery.Deliverer
	opts        render.Options
	maxAttempts int
	logger      *slog.Logger
	recorder    *metrics.Recorder
	now         func() time.Time
	newJobID    func() string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New constructs a pipeline.
func New(cfg Config) *Pipeline {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = domaingames.DefaultMaxAttempts
	}
	deliverer := cfg.Deliverer
	if deliverer == nil {
		deliverer = delivery.Disabled{}
	}
	return &Pipeline{
		store:       cfg.Store,
		resolver:    cfg.Resolver,
		renderer:    cfg.Renderer,
		deliverer:   deliverer,
		opts:        cfg.Options,
		maxAttempts: maxAttempts,
		logger:      cfg.Logger,
		recorder:    cfg.Recorder,
		now:         time.Now,
		newJobID:    uuid.NewString,
		inFlight:    make(map[string]struct{}),
	}
}

// MaxAttempts is the per-play production limit.
func (p *Pipeline) MaxAttempts() int {
	return p.maxAttempts
}

// IsInFlight reports whether a production for playID is running.
func (p *Pipeline) IsInFlight(playID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inFlight[playID]
	return ok
}

// InFlight reports how many productions are running.
func (p *Pipeline) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inFlight)
}

// tryAcquire marks playID in flight. The check and insert happen under one lock.
func (p *Pipeline) tryAcquire(playID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[playID]; busy {
		return false
	}
	p.inFlight[playID] = struct{}{}
	return true
}

func (p *Pipeline) release(playID string) {
	p.mu.Lock()
	delete(p.inFlight, playID)
	p.mu.Unlock()
}

// Produce resolves, renders, and delivers the GIF for a stored play. It blocks
// until the production finishes and never returns a bare error: failures are
// described by the Result's stage, code, and reason.
func (p *Pipeline) Produce(ctx context.Context, gameID, playID string) Result {
	start := p.now()
	res := Result{JobID: p.newJobID(), GameID: gameID, PlayID: playID, Stage: StageLookup}
	logger := logging.FromContext(ctx, p.logger)
	if logger != nil {
		logger = logger.With(
			logging.FieldJobID, res.JobID,
			logging.FieldGameID, gameID,
			logging.FieldPlayID, playID,
		)
	}

	if !p.tryAcquire(playID) {
		res.Outcome = OutcomeDuplicate
		res.Code = CodeDuplicateInFlight
		res.Reason = ReasonDuplicate
		res.Err = ErrDuplicateInFlight
		logging.Info(logger, "gif production already in flight")
		return p.finish(res, start)
	}
	defer p.release(playID)

	game, play, err := p.store.FindPlay(gameID, playID)
	if err != nil {
		res.Outcome = OutcomeRejected
		res.Code = CodePlayNotFound
		res.Reason = ReasonPlayNotFound
		res.Err = err
		return p.finish(res, start)
	}
	if play.Status == domaingames.PlayDelivered {
		res.Outcome = OutcomeRejected
		res.Code = CodeAlreadyDelivered
		res.Reason = ReasonAlreadyDelivered
		res.Err = ErrAlreadyDelivered
		return p.finish(res, start)
	}
	play, err = p.store.SetPlayStatus(gameID, playID, domaingames.StatusUpdate{
		To:          domaingames.PlayInProgress,
		MaxAttempts: p.maxAttempts,
	})
	if err != nil {
		res.Outcome = OutcomeRejected
		res.Code = CodeAttemptsExhausted
		res.Reason = ReasonNoAttemptsLeft
		res.Err = errors.Join(ErrAttemptsExhausted, err)
		logging.Warn(logger, "gif production rejected", "error", err)
		return p.finish(res, start)
	}
	logging.Info(logger, "gif production started", logging.FieldAttempt, play.Attempts)

	res.Stage = StageResolving
	ref, err := p.resolver.Resolve(ctx, video.QueryFor(game, play))
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return p.fail(logger, res, start, CodeVideoNotFound, ReasonNoVideo, err)
		}
		return p.fail(logger, res, start, CodeVideoLookupFailed, ReasonLookupFailed, err)
	}

	res.Stage = StageRendering
	renderStart := p.now()
	art, err := p.renderer.Render(ctx, ref, p.opts)
	if err != nil {
		code, reason := classifyRender(err)
		return p.fail(logger, res, start, code, reason, err)
	}
	res.Bytes = art.Size()
	p.recorder.RecordRender(p.now().Sub(renderStart), art.Size(), art.Reencoded)
	logging.Info(logger, "gif rendered",
		logging.FieldBytes, art.Size(),
		"width", art.Width,
		"reencoded", art.Reencoded,
	)

	res.Stage = StageDelivering
	deliverStart := p.now()
	err = p.deliverer.Deliver(ctx,
		delivery.Artifact{Filename: delivery.FilenameFor(play), Data: art.Data},
		delivery.CaptionFor(game, play),
	)
	p.recorder.RecordDelivery(p.deliverer.Name(), p.now().Sub(deliverStart), err)
	if err != nil {
		if delivery.Permanent(err) {
			return p.fail(logger, res, start, CodeDeliveryRejected, ReasonDeliveryRejected, err)
		}
		return p.fail(logger, res, start, CodeDeliveryFailed, ReasonDeliveryFailed, err)
	}

	if _, err := p.store.SetPlayStatus(gameID, playID, domaingames.StatusUpdate{To: domaingames.PlayDelivered}); err != nil {
		// The game may have been evicted mid-run; the GIF still went out.
		logging.Warn(logger, "could not mark play delivered", "error", err)
	}
	res.Outcome = OutcomeDelivered
	res.Stage = StageDelivered
	logging.Info(logger, "gif delivered", logging.FieldTarget, p.deliverer.Name())
	return p.finish(res, start)
}

func (p *Pipeline) fail(logger *slog.Logger, res Result, start time.Time, code, reason string, err error) Result {
	res.Outcome = OutcomeFailed
	res.Code = code
	res.Reason = reason
	res.Err = err
	if _, setErr := p.store.SetPlayStatus(res.GameID, res.PlayID, domaingames.StatusUpdate{
		To:     domaingames.PlayFailed,
		Stage:  string(res.Stage),
		Reason: code,
	}); setErr != nil {
		logging.Warn(logger, "could not mark play failed", "error", setErr)
	}
	logging.Error(logger, "gif production failed", err,
		logging.FieldStage, string(res.Stage),
		"reason", reason,
	)
	return p.finish(res, start)
}

func (p *Pipeline) finish(res Result, start time.Time) Result {
	res.Duration = p.now().Sub(start)
	p.recorder.RecordPipelineRun(string(res.Outcome), string(res.Stage), res.Duration)
	return res
}

func classifyRender(err error) (string, string) {
	switch {
	case errors.Is(err, render.ErrSizeBoundExceeded):
		return CodeSizeBoundExceeded, ReasonTooLarge
	case errors.Is(err, render.ErrDownloadFailed):
		return CodeDownloadFailed, ReasonDownloadFailed
	default:
		return CodeTranscodeFailed, ReasonConversionFailed
	}
}
