package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/app/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	httpserver "github.com/preston-bernstein/mlb-gif-service/internal/http"
	"github.com/preston-bernstein/mlb-gif-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/monitor"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
	"github.com/preston-bernstein/mlb-gif-service/internal/poller"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
	"github.com/preston-bernstein/mlb-gif-service/internal/queue"
	"github.com/preston-bernstein/mlb-gif-service/internal/store"
)

var metricsSetup = metrics.Setup

// staleCleaner removes work directories left behind by an earlier process.
type staleCleaner interface {
	CleanupStale() (int, error)
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *games.Service
	pipeline      *pipeline.Pipeline
	source        providers.GameSource
	cleaner       staleCleaner
	httpServer    httpServer
	metricsServer httpServer
	monitor       Monitoring
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured upstream source and delivery target.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil)
}

func newServerWithSource(cfg config.Config, logger *slog.Logger, source providers.GameSource) *Server {
	return newServerWithMetrics(cfg, logger, source, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source providers.GameSource, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if source == nil {
		source = newSourceFactory(logger, recorder).build(cfg)
	}
	loc := resolveLocation(cfg.Timezone, logger)

	memoryStore, gameSvc := buildServices(cfg)
	renderer := buildRenderer(cfg, logger)
	pipe := buildPipeline(cfg, memoryStore, renderer, logger, recorder)
	mon := buildMonitor(cfg, source, memoryStore, pipe, loc, logger, recorder)

	handler := handlers.NewHandler(handlers.Config{
		Games:      gameSvc,
		Producer:   mon,
		Monitoring: mon,
		Location:   loc,
		Logger:     logger,
	})
	httpSrv := buildHTTPServer(cfg, handler, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		pipeline:      pipe,
		source:        source,
		cleaner:       renderer,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		monitor:       mon,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, mon Monitoring) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		monitor:      mon,
	}
}

func buildServices(cfg config.Config) (*store.MemoryStore, *games.Service) {
	memoryStore := store.NewMemoryStore(store.Limits{
		MaxGames:        cfg.Store.MaxGames,
		MaxPlaysPerGame: cfg.Store.MaxPlaysPerGame,
	})
	return memoryStore, games.NewService(memoryStore)
}

// buildMonitor wires the poll loop and, when tracking is enabled, the scoring queue
// feeding automatic productions.
func buildMonitor(cfg config.Config, source providers.GameSource, memoryStore *store.MemoryStore, pipe *pipeline.Pipeline, loc *time.Location, logger *slog.Logger, recorder *metrics.Recorder) *monitor.Monitor {
	var (
		mon     *monitor.Monitor
		tracker *poller.Tracker
		scoring *queue.ScoringQueue
		enq     poller.Enqueuer
	)
	if cfg.Tracker.Enabled {
		tracker = poller.NewTracker(cfg.Tracker.Team, cfg.Tracker.Events, cfg.Tracker.ScoringPlays)
		scoring = queue.New(cfg.Tracker.QueueSize, queue.StoreGate{
			Store:       memoryStore,
			InFlight:    pipe,
			MaxAttempts: pipe.MaxAttempts(),
			Logger:      logger,
		}, logger, recorder)
		enq = scoring
	}

	plr := poller.New(poller.Config{
		Source:       source,
		Store:        memoryStore,
		Logger:       logger,
		Recorder:     recorder,
		Interval:     cfg.PollInterval,
		CycleTimeout: cfg.PollCycleTimeout,
		GameTTL:      cfg.Store.GameTTL,
		Location:     loc,
		Tracker:      tracker,
		Queue:        enq,
		OnEnqueued: func(item queue.Item) {
			mon.RecordDetected(item)
		},
		Retry: poller.RetryPolicy{
			MaxAttempts: pipe.MaxAttempts(),
			Delay:       cfg.Tracker.RetryDelay,
			Retryable:   pipeline.RetryableCode,
		},
	})

	mon = monitor.New(monitor.Config{
		Poller:      plr,
		Producer:    pipe,
		Queue:       scoring,
		RetryDelay:  cfg.Tracker.RetryDelay,
		TrackedTeam: cfg.Tracker.Team,
		Logger:      logger,
	})
	return mon
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

func resolveLocation(tz string, logger *slog.Logger) *time.Location {
	if loc := providers.ResolveTimezone(tz); loc != nil {
		return loc
	}
	if tz != "" {
		logging.Warn(logger, "unknown timezone, using UTC", "timezone", tz)
	}
	return time.UTC
}

// Run starts the HTTP server and, when configured, monitoring, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.cleanupStale()
	s.startMetrics()
	s.startServer(stop)
	if s.cfg.AutoStart && s.monitor != nil {
		s.monitor.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) cleanupStale() {
	if s.cleaner == nil {
		return
	}
	removed, err := s.cleaner.CleanupStale()
	if err != nil {
		logging.Warn(s.logger, "stale clip cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		logging.Info(s.logger, "removed stale clip directories", logging.FieldCount, removed)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.monitor != nil {
		if _, err := s.monitor.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop monitoring", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	// Stop rate-limited sources to avoid ticker leaks.
	if closer, ok := s.source.(providers.Closer); ok {
		closer.Close()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
