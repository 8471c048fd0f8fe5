package queue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/store"
	"github.com/preston-bernstein/mlb-gif-service/internal/testutil"
)

type gateFunc struct {
	admit  func(Item) bool
	queued []Item
}

func (g *gateFunc) Admit(item Item) bool { return g.admit(item) }
func (g *gateFunc) Queued(item Item)     { g.queued = append(g.queued, item) }

func TestEnqueueDeduplicates(t *testing.T) {
	q := New(4, nil, nil, nil)
	if got := q.Enqueue(Item{GameID: "g", PlayID: "p1"}); got != Enqueued {
		t.Fatalf("expected enqueued, got %s", got)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "p1"}); got != Duplicate {
		t.Fatalf("expected duplicate, got %s", got)
	}
	if q.Len() != 1 {
		t.Fatalf("expected one item, got %d", q.Len())
	}
}

func TestEnqueueDropsWhenFullWithoutBlocking(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	q := New(2, nil, logger, rec)
	q.Enqueue(Item{GameID: "g", PlayID: "p1"})
	q.Enqueue(Item{GameID: "g", PlayID: "p2"})

	done := make(chan EnqueueResult, 1)
	go func() { done <- q.Enqueue(Item{GameID: "g", PlayID: "p3"}) }()
	select {
	case got := <-done:
		if got != Dropped {
			t.Fatalf("expected dropped, got %s", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}

	if q.Len() != 2 {
		t.Fatalf("expected queue to stay at capacity, got %d", q.Len())
	}
	if rec.Pipeline().QueueDrops != 1 {
		t.Fatalf("expected drop recorded, got %d", rec.Pipeline().QueueDrops)
	}
	if !strings.Contains(buf.String(), "scoring queue full") {
		t.Fatalf("expected warning logged, got %s", buf.String())
	}
	// A dropped play was never queued, so it may be offered again later.
	item, _ := q.Dequeue(context.Background())
	if item.PlayID != "p1" {
		t.Fatalf("expected FIFO order, got %s", item.PlayID)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "p3"}); got != Enqueued {
		t.Fatalf("expected previously dropped play to be accepted, got %s", got)
	}
}

func TestEnqueueConsultsGate(t *testing.T) {
	gate := &gateFunc{admit: func(i Item) bool { return i.PlayID != "delivered" }}
	q := New(4, gate, nil, nil)

	if got := q.Enqueue(Item{GameID: "g", PlayID: "delivered"}); got != Skipped {
		t.Fatalf("expected skipped, got %s", got)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "fresh"}); got != Enqueued {
		t.Fatalf("expected enqueued, got %s", got)
	}
	if len(gate.queued) != 1 || gate.queued[0].PlayID != "fresh" {
		t.Fatalf("expected gate notified once, got %+v", gate.queued)
	}
}

func TestDequeueHonoursContext(t *testing.T) {
	q := New(1, nil, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := q.Dequeue(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

type inFlight map[string]bool

func (f inFlight) IsInFlight(id string) bool { return f[id] }

func TestStoreGate(t *testing.T) {
	s := store.NewMemoryStore(store.Limits{})
	s.UpsertGame(domaingames.Game{ID: "g", Plays: []domaingames.Play{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}})
	if _, err := s.SetPlayStatus("g", "p2", domaingames.StatusUpdate{To: domaingames.PlayInProgress}); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if _, err := s.SetPlayStatus("g", "p2", domaingames.StatusUpdate{To: domaingames.PlayDelivered}); err != nil {
		t.Fatalf("set status: %v", err)
	}

	gate := StoreGate{Store: s, InFlight: inFlight{"p3": true}, MaxAttempts: 3}
	q := New(4, gate, nil, nil)

	if got := q.Enqueue(Item{GameID: "g", PlayID: "p1"}); got != Enqueued {
		t.Fatalf("expected fresh play enqueued, got %s", got)
	}
	if _, p, _ := s.FindPlay("g", "p1"); p.Status != domaingames.PlayQueued {
		t.Fatalf("expected play marked queued, got %s", p.Status)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "p2"}); got != Skipped {
		t.Fatalf("expected delivered play skipped, got %s", got)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "p3"}); got != Skipped {
		t.Fatalf("expected in-flight play skipped, got %s", got)
	}
	if got := q.Enqueue(Item{GameID: "g", PlayID: "missing"}); got != Skipped {
		t.Fatalf("expected unknown play skipped, got %s", got)
	}
}
