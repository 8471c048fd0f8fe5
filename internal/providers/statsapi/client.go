package statsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
	"github.com/preston-bernstein/mlb-gif-service/internal/timeutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls how the statsapi client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timezone   string
}

// Client fetches the MLB schedule and play-by-play feeds and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs a statsapi client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
	}
}

// ListGames retrieves the schedule for date (today in the configured timezone when blank or invalid).
func (c *Client) ListGames(ctx context.Context, date string) ([]games.Game, error) {
	date = c.resolveDate(date)
	q := url.Values{}
	q.Set("sportId", mlbSportID)
	q.Set("date", date)
	q.Set("hydrate", scheduleHydrate)

	var payload scheduleResponse
	if err := c.getJSON(ctx, "/api/v1/schedule", q, &payload); err != nil {
		return nil, err
	}

	observedAt := c.now()
	out := make([]games.Game, 0)
	for _, d := range payload.Dates {
		for _, g := range d.Games {
			if g.GamePk == 0 {
				continue
			}
			out = append(out, mapGame(g, firstNonEmpty(d.Date, date), observedAt))
		}
	}
	return out, nil
}

// ListPlays retrieves the play list for a game, falling back across play-by-play endpoints.
func (c *Client) ListPlays(ctx context.Context, gameID string) ([]games.Play, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("statsapi: %w: empty game id", providers.ErrNotFound)
	}

	var lastErr error
	for _, pattern := range playEndpoints {
		var envelope playsEnvelope
		err := c.getJSON(ctx, fmt.Sprintf(pattern, url.PathEscape(gameID)), nil, &envelope)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		raw, ok := envelope.plays()
		if !ok {
			lastErr = fmt.Errorf("statsapi: %w: no plays in %s", providers.ErrNotFound, pattern)
			continue
		}
		observedAt := c.now()
		out := make([]games.Play, 0, len(raw))
		for _, p := range raw {
			if mapped, ok := mapPlay(gameID, p, observedAt); ok {
				out = append(out, mapped)
			}
		}
		return out, nil
	}
	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("statsapi: %w: %v", providers.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("statsapi: %w: %s", providers.ErrNotFound, path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "statsapi rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("statsapi: %w: unexpected status %d: %s", providers.ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("statsapi: %w: read body: %v", providers.ErrUpstreamUnavailable, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("statsapi: %w: decode %s: %v", providers.ErrUpstreamUnavailable, path, err)
	}
	return nil
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if _, err := timeutil.ParseDate(date); err == nil {
			return date
		}
	}
	return timeutil.TodayIn(c.now(), c.loc)
}
