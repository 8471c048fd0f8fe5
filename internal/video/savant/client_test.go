package savant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

const gfBody = `{
	"team_home": [
		{"play_id": "uuid-ball", "inning": 4, "batter_name": "Pete Alonso", "pitch_call": "ball"},
		{"play_id": "uuid-hr", "inning": "4", "batter_name": "Pete Alonso", "pitch_call": "hit_into_play",
		 "events": "home_run", "des": "Pete Alonso homers (20).", "hit_speed": 108.4}
	],
	"team_away": [
		{"play_id": "uuid-away", "inning": 4, "batter_name": "Matt Olson", "pitch_call": "hit_into_play", "events": "single"}
	]
}`

type savantServer struct {
	*httptest.Server
	gfStatus   int
	pageStatus int
	clipType   string
	heads      atomic.Int32
	lastPlayID atomic.Value
}

func newSavantServer(t *testing.T, opts ...func(*savantServer)) *savantServer {
	t.Helper()
	s := &savantServer{gfStatus: http.StatusOK, pageStatus: http.StatusOK, clipType: "video/mp4"}
	for _, opt := range opts {
		opt(s)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/gf", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("game_pk") != "745123" {
			t.Errorf("unexpected game_pk %q", r.URL.Query().Get("game_pk"))
		}
		w.WriteHeader(s.gfStatus)
		_, _ = w.Write([]byte(gfBody))
	})
	mux.HandleFunc("/sporty-videos", func(w http.ResponseWriter, r *http.Request) {
		s.lastPlayID.Store(r.URL.Query().Get("playId"))
		w.WriteHeader(s.pageStatus)
		fmt.Fprintf(w, `<html><body><video><source src="http://%s/clips/hr.mp4"></video></body></html>`, r.Host)
	})
	mux.HandleFunc("/clips/hr.mp4", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			s.heads.Add(1)
		}
		w.Header().Set("Content-Type", s.clipType)
		w.WriteHeader(http.StatusOK)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *savantServer) client() *Client {
	return NewClient(Config{BaseURL: s.URL + "/", HTTPClient: s.Server.Client()})
}

func TestResolveFindsVerifiedClip(t *testing.T) {
	srv := newSavantServer(t)

	ref, err := srv.client().Resolve(context.Background(), homerQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.URL != srv.URL+"/clips/hr.mp4" || ref.PlayUUID != "uuid-hr" || ref.ContentType != "video/mp4" {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if srv.lastPlayID.Load() != "uuid-hr" {
		t.Fatalf("expected page lookup for uuid-hr, got %v", srv.lastPlayID.Load())
	}
	if srv.heads.Load() != 1 {
		t.Fatalf("expected one HEAD verification, got %d", srv.heads.Load())
	}
}

func TestResolveRejectsNonVideoContent(t *testing.T) {
	srv := newSavantServer(t, func(s *savantServer) { s.clipType = "text/html" })

	_, err := srv.client().Resolve(context.Background(), homerQuery())
	if !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveNoConfidentMatch(t *testing.T) {
	srv := newSavantServer(t)
	q := homerQuery()
	q.Batter = "Francisco Lindor"

	_, err := srv.client().Resolve(context.Background(), q)
	if !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if srv.lastPlayID.Load() != nil {
		t.Fatalf("expected no page fetch for low-confidence match")
	}
}

func TestResolveNonNumericGameIsNotFound(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unused.test"})
	q := homerQuery()
	q.GameID = "fixture-1"

	_, err := c.Resolve(context.Background(), q)
	if !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveCatalogErrorsAreRetryable(t *testing.T) {
	srv := newSavantServer(t, func(s *savantServer) { s.gfStatus = http.StatusBadGateway })

	_, err := srv.client().Resolve(context.Background(), homerQuery())
	if !errors.Is(err, video.ErrCatalogUnavailable) {
		t.Fatalf("expected catalog unavailable, got %v", err)
	}
	if !video.Retryable(err) {
		t.Fatalf("expected catalog error to be retryable")
	}
}

func TestResolvePageOutageIsRetryable(t *testing.T) {
	srv := newSavantServer(t, func(s *savantServer) { s.pageStatus = http.StatusServiceUnavailable })

	_, err := srv.client().Resolve(context.Background(), homerQuery())
	if !errors.Is(err, video.ErrCatalogUnavailable) {
		t.Fatalf("expected catalog unavailable, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.baseURL != defaultBaseURL || c.minScore != defaultMinScore || c.httpClient == nil {
		t.Fatalf("unexpected defaults %+v", c)
	}
}
