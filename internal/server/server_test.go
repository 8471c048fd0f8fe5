package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/app/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/monitor"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers/statsapi"
	"github.com/preston-bernstein/mlb-gif-service/internal/store"
	"github.com/preston-bernstein/mlb-gif-service/internal/teststubs"
	"github.com/preston-bernstein/mlb-gif-service/internal/testutil"
)

type stubMonitoring struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	err        error
}

func (m *stubMonitoring) Start(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
	return true
}

func (m *stubMonitoring) Stop(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	return true, m.err
}

func (m *stubMonitoring) Status() monitor.Status { return monitor.Status{} }

func (m *stubMonitoring) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls, m.stopCalls
}

type stubCleaner struct {
	calls   int
	removed int
	err     error
}

func (c *stubCleaner) CleanupStale() (int, error) {
	c.calls++
	return c.removed, c.err
}

type closingSource struct {
	testutil.GoodSource
	closed bool
}

func (c *closingSource) Close() { c.closed = true }

func newTestService() *games.Service {
	return games.NewService(store.NewMemoryStore(store.Limits{}))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerServesHealthAndGames(t *testing.T) {
	src := &teststubs.StubSource{
		Games:  []domaingames.Game{testutil.SampleGame("745001")},
		Notify: make(chan struct{}),
	}
	src.SetPlays("745001", []domaingames.Play{testutil.SamplePlay("745001", 0, "Single")})

	cfg := config.Config{PollInterval: 5 * time.Millisecond}
	srv := newServerWithSource(cfg, nil, src)
	srv.monitor.Start(context.Background())
	defer srv.monitor.Stop(context.Background())

	select {
	case <-src.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for poller to fetch")
	}

	router := srv.Handler()
	if rec := get(t, router, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}

	deadline := time.Now().Add(time.Second)
	for {
		rec := get(t, router, "/games")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 from /games, got %d", rec.Code)
		}
		var body struct {
			Games []domaingames.Game `json:"games"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode games response: %v", err)
		}
		if len(body.Games) == 1 {
			if body.Games[0].ID != "745001" {
				t.Fatalf("unexpected game id %s", body.Games[0].ID)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("game never reached the store")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if rec := get(t, router, "/games/745001/plays"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from plays, got %d", rec.Code)
	}
}

func TestServerHandlesProviderErrorGracefully(t *testing.T) {
	src := &teststubs.StubSource{Err: providers.ErrUpstreamUnavailable}
	cfg := config.Config{PollInterval: 5 * time.Millisecond}
	srv := newServerWithSource(cfg, nil, src)
	srv.monitor.Start(context.Background())
	defer srv.monitor.Stop(context.Background())

	deadline := time.Now().Add(time.Second)
	for src.Calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("poller never called the source")
		}
		time.Sleep(5 * time.Millisecond)
	}

	router := srv.Handler()
	rec := get(t, router, "/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /games, got %d", rec.Code)
	}
	var body struct {
		Games []domaingames.Game `json:"games"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode games response: %v", err)
	}
	if len(body.Games) != 0 {
		t.Fatalf("expected no games when provider errors, got %d", len(body.Games))
	}
	if rec := get(t, router, "/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from /ready while upstream fails, got %d", rec.Code)
	}
}

func TestServerTracksPlaysWhenEnabled(t *testing.T) {
	savant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer savant.Close()

	src := &teststubs.StubSource{Games: []domaingames.Game{testutil.SampleGame("745001")}}
	src.SetPlays("745001", []domaingames.Play{
		testutil.SamplePlay("745001", 0, "Single"),
		testutil.SamplePlay("745001", 1, "Home Run"),
	})

	cfg := config.Config{
		PollInterval: 5 * time.Millisecond,
		Savant:       config.SavantConfig{BaseURL: savant.URL},
		Tracker: config.TrackerConfig{
			Enabled:    true,
			Team:       "NYM",
			Events:     []string{"home_run"},
			QueueSize:  4,
			RetryDelay: time.Hour,
		},
	}
	srv := newServerWithSource(cfg, nil, src)
	srv.monitor.Start(context.Background())
	defer srv.monitor.Stop(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		status := srv.monitor.Status()
		if !status.Tracking || status.QueueCapacity != 4 {
			t.Fatalf("expected tracking with queue capacity 4, got %+v", status)
		}
		if status.PlaysDetected == 1 && status.Failures == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected one detected and failed play, got %+v", status)
		}
		time.Sleep(5 * time.Millisecond)
	}

	_, play, err := srv.store.FindPlay("745001", domaingames.PlayID("745001", 1))
	if err != nil {
		t.Fatalf("expected tracked play in store: %v", err)
	}
	if play.Status != domaingames.PlayFailed || play.Attempts != 1 {
		t.Fatalf("expected failed attempt on tracked play, got %s/%d", play.Status, play.Attempts)
	}
	_, single, _ := srv.store.FindPlay("745001", domaingames.PlayID("745001", 0))
	if single.Status != domaingames.PlayUnseen {
		t.Fatalf("untracked play should stay unseen, got %s", single.Status)
	}
}

func TestSelectSourceFallsBackToFixture(t *testing.T) {
	src := selectSource(config.Config{Provider: "unknown"}, nil)
	if _, ok := src.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", src)
	}
	if _, ok := selectSource(config.Config{}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture for blank provider")
	}
}

func TestSelectSourceChoosesStatsAPI(t *testing.T) {
	src := selectSource(config.Config{
		Provider: "StatsAPI",
		Timezone: "America/New_York",
		StatsAPI: config.StatsAPIConfig{BaseURL: "http://example.com"},
	}, nil)
	if _, ok := src.(*statsapi.Client); !ok {
		t.Fatalf("expected statsapi source, got %T", src)
	}
}

func TestResolveLocationFallsBackToUTC(t *testing.T) {
	if loc := resolveLocation("Mars/Olympus", nil); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
	if loc := resolveLocation("America/New_York", nil); loc.String() != "America/New_York" {
		t.Fatalf("expected configured zone, got %v", loc)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:     "0",
		Provider: "fixture",
		Metrics: config.MetricsConfig{
			Enabled: false,
		},
	}
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.pipeline == nil || srv.monitor == nil {
		t.Fatalf("expected pipeline and monitor to be wired")
	}
	if srv.monitor.Status().Tracking {
		t.Fatalf("tracking should be off unless enabled")
	}
	if closer, ok := srv.source.(providers.Closer); ok {
		closer.Close()
	}
}

func TestGracefulShutdownStopsMonitoringAndServer(t *testing.T) {
	mon := &stubMonitoring{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv, mon)
	srv.gracefulShutdown()

	if _, stops := mon.counts(); stops != 1 {
		t.Fatalf("expected monitoring Stop to be called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	mon := &stubMonitoring{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), blocking, mon)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenMonitoringStopErrors(t *testing.T) {
	mon := &stubMonitoring{err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv, mon)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownClosesSource(t *testing.T) {
	src := &closingSource{}
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), &testutil.StubHTTPServer{}, &stubMonitoring{})
	srv.source = src
	srv.gracefulShutdown()

	if !src.closed {
		t.Fatalf("expected source to be closed on shutdown")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), &testutil.ErrHTTPServer{}, &stubMonitoring{})

	stopCalled := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunAutoStartsAndStopsMonitoring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := &stubMonitoring{}
	httpSrv := &testutil.CloseableHTTPServer{}
	cleaner := &stubCleaner{removed: 2}

	srv := newServerWithDeps(config.Config{AutoStart: true}, nil, newTestService(), httpSrv, mon)
	srv.cleaner = cleaner

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	starts, stops := mon.counts()
	if starts != 1 || stops != 1 {
		t.Fatalf("expected one start and one stop, got %d/%d", starts, stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
	if cleaner.calls != 1 {
		t.Fatalf("expected stale cleanup at startup, got %d calls", cleaner.calls)
	}
}

func TestRunWithoutAutoStartLeavesMonitoringOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mon := &stubMonitoring{}
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), &testutil.CloseableHTTPServer{}, mon)
	srv.cleaner = &stubCleaner{err: errors.New("scan failed")}

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}
	if starts, _ := mon.counts(); starts != 0 {
		t.Fatalf("expected monitoring to stay off, got %d starts", starts)
	}
}
