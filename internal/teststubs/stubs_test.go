package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/mlb-gif-service/internal/delivery"
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/render"
	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

func TestStubSourceTracksCalls(t *testing.T) {
	err := errors.New("boom")
	s := &StubSource{Games: []domaingames.Game{{ID: "g1"}}, Err: err, Notify: make(chan struct{})}
	if _, got := s.ListGames(context.Background(), "2024-01-01"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if s.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", s.Calls.Load())
	}
	select {
	case <-s.Notify:
	default:
		t.Fatalf("expected notify channel closed after first call")
	}
	// A second call must not panic on the closed channel.
	_, _ = s.ListGames(context.Background(), "")
}

func TestStubSourcePlays(t *testing.T) {
	s := &StubSource{}
	s.SetPlays("g1", []domaingames.Play{{ID: "g1_0"}})
	plays, err := s.ListPlays(context.Background(), "g1")
	if err != nil || len(plays) != 1 {
		t.Fatalf("expected one play, got %v err %v", plays, err)
	}
	plays[0].ID = "mutated"
	again, _ := s.ListPlays(context.Background(), "g1")
	if again[0].ID != "g1_0" {
		t.Fatalf("expected copies, got %s", again[0].ID)
	}

	boom := errors.New("boom")
	s.SetPlaysErr("g2", boom)
	if _, err := s.ListPlays(context.Background(), "g2"); !errors.Is(err, boom) {
		t.Fatalf("expected plays error, got %v", err)
	}
	if s.PlayCalls.Load() != 3 {
		t.Fatalf("expected 3 play calls, got %d", s.PlayCalls.Load())
	}
}

func TestPipelineStubs(t *testing.T) {
	r := &StubResolver{Err: video.ErrNotFound}
	if _, err := r.Resolve(context.Background(), video.Query{}); !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected resolver error, got %v", err)
	}

	rr := &StubRenderer{Artifact: render.Artifact{Data: []byte("gif")}}
	art, err := rr.Render(context.Background(), video.Ref{}, render.Options{})
	if err != nil || art.Size() != 3 {
		t.Fatalf("unexpected render result %v %v", art, err)
	}

	d := &StubDeliverer{}
	if err := d.Deliver(context.Background(), delivery.Artifact{}, delivery.Caption{Event: "Home Run"}); err != nil {
		t.Fatalf("unexpected deliver error: %v", err)
	}
	if got := d.Captions(); len(got) != 1 || got[0].Event != "Home Run" || d.Calls.Load() != 1 {
		t.Fatalf("unexpected captions %v", got)
	}
}

func TestStubRendererBlocksUntilReleased(t *testing.T) {
	rr := &StubRenderer{Entered: make(chan struct{}, 1), Block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := rr.Render(ctx, video.Ref{}, render.Options{})
		done <- err
	}()
	<-rr.Entered
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
