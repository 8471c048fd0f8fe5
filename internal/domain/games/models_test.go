package games

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/teams"
)

func TestGameStatusValues(t *testing.T) {
	expected := map[GameStatus]string{
		StatusScheduled: "SCHEDULED",
		StatusLive:      "LIVE",
		StatusFinal:     "FINAL",
		StatusPostponed: "POSTPONED",
	}

	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
	}
}

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Provider", "provider"},
		{"HomeTeam", "homeTeam"},
		{"AwayTeam", "awayTeam"},
		{"StartTime", "startTime"},
		{"Status", "status"},
		{"Score", "score"},
		{"Plays", "plays"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}

func TestBattingTeamFollowsHalfInning(t *testing.T) {
	g := Game{
		HomeTeam: teams.Team{Abbreviation: "NYM"},
		AwayTeam: teams.Team{Abbreviation: "ATL"},
	}
	if got := g.BattingTeam(Play{HalfInning: HalfTop}); got.Abbreviation != "ATL" {
		t.Fatalf("expected away team batting in the top half, got %s", got.Abbreviation)
	}
	if got := g.BattingTeam(Play{HalfInning: HalfBottom}); got.Abbreviation != "NYM" {
		t.Fatalf("expected home team batting in the bottom half, got %s", got.Abbreviation)
	}
	if g.Matchup() != "ATL @ NYM" {
		t.Fatalf("unexpected matchup %q", g.Matchup())
	}
}

func TestCloneDoesNotSharePlays(t *testing.T) {
	g := Game{ID: "1", Plays: []Play{{ID: "1_0"}}}
	c := g.Clone()
	c.Plays[0].Description = "changed"
	if g.Plays[0].Description != "" {
		t.Fatal("expected clone to copy plays")
	}
}

func TestPlayIDAndEventKey(t *testing.T) {
	if got := PlayID("745123", 42); got != "745123_42" {
		t.Fatalf("unexpected play id %q", got)
	}
	if got := PlayID("1", 0); got != "1_0" {
		t.Fatalf("unexpected play id %q", got)
	}
	if got := (Play{Event: "Home Run"}).EventKey(); got != "home_run" {
		t.Fatalf("unexpected event key %q", got)
	}
	if got := (Play{Event: "Home Run", EventType: "HOME_RUN"}).EventKey(); got != "home_run" {
		t.Fatalf("expected event type preferred, got %q", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from     PlayStatus
		to       PlayStatus
		attempts int
		ok       bool
	}{
		{"", PlayQueued, 0, true},
		{PlayUnseen, PlayInProgress, 0, true},
		{PlayQueued, PlayInProgress, 0, true},
		{PlayInProgress, PlayDelivered, 1, true},
		{PlayInProgress, PlayFailed, 1, true},
		{PlayFailed, PlayQueued, 1, true},
		{PlayFailed, PlayInProgress, 2, true},
		{PlayFailed, PlayQueued, 3, false},
		{PlayDelivered, PlayQueued, 1, false},
		{PlayDelivered, PlayInProgress, 1, false},
		{PlayQueued, PlayUnseen, 0, false},
		{PlayInProgress, PlayQueued, 1, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to, tc.attempts, 3); got != tc.ok {
			t.Fatalf("%s -> %s (attempts=%d): expected %v, got %v", tc.from, tc.to, tc.attempts, tc.ok, got)
		}
	}
}

func TestApplyTracksAttemptsAndFailures(t *testing.T) {
	p := Play{}
	if err := p.Apply(StatusUpdate{To: PlayInProgress}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Attempts != 1 {
		t.Fatalf("expected attempts incremented, got %d", p.Attempts)
	}
	if err := p.Apply(StatusUpdate{To: PlayFailed, Stage: "rendering", Reason: "video conversion failed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FailureStage != "rendering" || p.FailureReason != "video conversion failed" {
		t.Fatalf("expected failure details recorded, got %+v", p)
	}
	if p.Exhausted(1) != true || p.Exhausted(3) != false {
		t.Fatal("unexpected exhaustion result")
	}
	if err := p.Apply(StatusUpdate{To: PlayInProgress}); err != nil {
		t.Fatalf("expected retry allowed, got %v", err)
	}
	if err := p.Apply(StatusUpdate{To: PlayDelivered}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FailureStage != "" || p.FailureReason != "" {
		t.Fatalf("expected failure cleared on delivery, got %+v", p)
	}
	if err := p.Apply(StatusUpdate{To: PlayQueued}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from delivered, got %v", err)
	}
}

func TestRetryDueHonoursDelayAndAttempts(t *testing.T) {
	failedAt := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
	p := Play{}
	if err := p.Apply(StatusUpdate{To: PlayInProgress}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Apply(StatusUpdate{To: PlayFailed, Stage: "rendering", Reason: "DownloadFailed", At: failedAt}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.FailedAt.Equal(failedAt) {
		t.Fatalf("expected failure time recorded, got %v", p.FailedAt)
	}
	if p.RetryDue(failedAt.Add(10*time.Second), 30*time.Second, 3) {
		t.Fatal("expected retry held back before the delay")
	}
	if !p.RetryDue(failedAt.Add(30*time.Second), 30*time.Second, 3) {
		t.Fatal("expected retry due once the delay has passed")
	}
	if p.RetryDue(failedAt.Add(time.Hour), 30*time.Second, 1) {
		t.Fatal("expected no retry once attempts are exhausted")
	}

	if err := p.Apply(StatusUpdate{To: PlayInProgress}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Apply(StatusUpdate{To: PlayDelivered}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.FailedAt.IsZero() || p.RetryDue(failedAt.Add(time.Hour), 0, 3) {
		t.Fatalf("expected delivered play never due, got %+v", p)
	}
}
