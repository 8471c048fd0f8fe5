// Package delivery pushes finished GIFs to messaging endpoints.
package delivery

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultMaxBytes = 50 << 20
	footerText      = "MLB GIF Service"
)

// Deliverer sends one artifact with its caption.
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, a Artifact, c Caption) error
}

// Artifact is the file handed to the endpoint.
type Artifact struct {
	Filename string
	Data     []byte
}

// Caption is the play context shown next to the GIF.
type Caption struct {
	Event       string
	Description string
	AwayTeam    string
	HomeTeam    string
	Inning      int
	HalfInning  string
	Batter      string
	Pitcher     string
	AwayScore   int
	HomeScore   int
	ImpactScore float64
}

// CaptionFor builds the caption for a play in g.
func CaptionFor(g games.Game, p games.Play) Caption {
	return Caption{
		Event:       orDefault(p.Event, "Baseball Play"),
		Description: p.Description,
		AwayTeam:    orDefault(g.AwayTeam.Abbreviation, "Away"),
		HomeTeam:    orDefault(g.HomeTeam.Abbreviation, "Home"),
		Inning:      p.Inning,
		HalfInning:  p.HalfInning,
		Batter:      orDefault(p.Batter, "Unknown"),
		Pitcher:     orDefault(p.Pitcher, "Unknown"),
		AwayScore:   p.AwayScore,
		HomeScore:   p.HomeScore,
		ImpactScore: p.ImpactScore,
	}
}

// FilenameFor names the uploaded file after the event.
func FilenameFor(p games.Play) string {
	key := p.EventKey()
	if key == "" {
		key = "play"
	}
	return key + ".gif"
}

func (c Caption) Matchup() string {
	return c.AwayTeam + " @ " + c.HomeTeam
}

func (c Caption) InningLabel() string {
	if c.Inning <= 0 {
		return "?"
	}
	half := ""
	switch c.HalfInning {
	case games.HalfTop:
		half = "Top "
	case games.HalfBottom:
		half = "Bot "
	}
	return fmt.Sprintf("%s%d", half, c.Inning)
}

func (c Caption) Score() string {
	return fmt.Sprintf("%d-%d", c.AwayScore, c.HomeScore)
}

func (c Caption) Impact() string {
	return fmt.Sprintf("%.1f%%", c.ImpactScore*100)
}

// Text renders a plain-text caption.
func (c Caption) Text() string {
	var b strings.Builder
	b.WriteString(c.Event)
	if c.Description != "" {
		b.WriteString("\n" + c.Description)
	}
	fmt.Fprintf(&b, "\n%s | %s | %s vs %s | %s", c.Matchup(), c.InningLabel(), c.Batter, c.Pitcher, c.Score())
	return b.String()
}

func checkSize(target string, a Artifact, maxBytes int64) error {
	if len(a.Data) == 0 {
		return fmt.Errorf("%s: %w: empty artifact", target, ErrDeliveryFailed)
	}
	if maxBytes > 0 && int64(len(a.Data)) > maxBytes {
		return fmt.Errorf("%s: %w: %d bytes exceeds %d", target, ErrTooLarge, len(a.Data), maxBytes)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
