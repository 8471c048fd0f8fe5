package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-gif-service/internal/delivery"
	"github.com/preston-bernstein/mlb-gif-service/internal/render"
	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

// StubResolver is a test double for video.Resolver.
type StubResolver struct {
	Ref   video.Ref
	Err   error
	Calls atomic.Int32
}

func (s *StubResolver) Resolve(ctx context.Context, q video.Query) (video.Ref, error) {
	_ = ctx
	_ = q
	s.Calls.Add(1)
	return s.Ref, s.Err
}

// StubRenderer returns a fixed artifact. When Block is set, Render signals
// Entered and waits for Block to close before returning.
type StubRenderer struct {
	Artifact render.Artifact
	Err      error
	Calls    atomic.Int32
	Entered  chan struct{}
	Block    chan struct{}
}

func (s *StubRenderer) Render(ctx context.Context, ref video.Ref, opts render.Options) (render.Artifact, error) {
	_ = ref
	_ = opts
	s.Calls.Add(1)
	if s.Entered != nil {
		s.Entered <- struct{}{}
	}
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return render.Artifact{}, ctx.Err()
		}
	}
	return s.Artifact, s.Err
}

// StubDeliverer records deliveries.
type StubDeliverer struct {
	Err   error
	Calls atomic.Int32

	mu       sync.Mutex
	captions []delivery.Caption
}

func (s *StubDeliverer) Name() string { return "stub" }

func (s *StubDeliverer) Deliver(ctx context.Context, a delivery.Artifact, c delivery.Caption) error {
	_ = ctx
	_ = a
	s.Calls.Add(1)
	s.mu.Lock()
	s.captions = append(s.captions, c)
	s.mu.Unlock()
	return s.Err
}

// Captions returns the captions delivered so far.
func (s *StubDeliverer) Captions() []delivery.Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]delivery.Caption, len(s.captions))
	copy(out, s.captions)
	return out
}
