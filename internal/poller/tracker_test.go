package poller

import (
	"testing"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

func TestTrackerQualifies(t *testing.T) {
	g := liveGame("1")
	tests := []struct {
		name    string
		tracker *Tracker
		play    domaingames.Play
		want    bool
	}{
		{"tracked team home run", NewTracker("NYM", []string{"Home Run"}, false), play("1", 0, domaingames.HalfBottom, "Home Run", 1), true},
		{"other team home run", NewTracker("NYM", []string{"Home Run"}, false), play("1", 0, domaingames.HalfTop, "Home Run", 1), false},
		{"team by id", NewTracker("121", []string{"home_run"}, false), play("1", 0, domaingames.HalfBottom, "Home Run", 1), true},
		{"untracked event", NewTracker("NYM", []string{"Home Run"}, false), play("1", 0, domaingames.HalfBottom, "Single", 0), false},
		{"scoring play enabled", NewTracker("NYM", []string{"Home Run"}, true), play("1", 0, domaingames.HalfBottom, "Single", 1), true},
		{"scoring play without runs", NewTracker("NYM", nil, true), play("1", 0, domaingames.HalfBottom, "Single", 0), false},
		{"any team", NewTracker("", []string{"Home Run"}, false), play("1", 0, domaingames.HalfTop, "Home Run", 1), true},
		{"nil tracker", nil, play("1", 0, domaingames.HalfBottom, "Home Run", 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tracker.Qualifies(g, tc.play); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
