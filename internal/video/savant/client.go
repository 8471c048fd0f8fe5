// Package savant resolves plays to Baseball Savant broadcast clips.
package savant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches Baseball Savant.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	MinScore   int
	Logger     *slog.Logger
}

// Client implements video.Resolver against the /gf and /sporty-videos endpoints.
type Client struct {
	baseURL    string
	httpClient httpDoer
	minScore   int
	logger     *slog.Logger
}

// NewClient constructs a Savant client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		doer = &http.Client{Timeout: defaultHTTPTimeout}
	}
	minScore := cfg.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	return &Client{
		baseURL:    base,
		httpClient: doer,
		minScore:   minScore,
		logger:     cfg.Logger,
	}
}

// Resolve finds the best-matching clip for q and verifies it is a reachable video.
func (c *Client) Resolve(ctx context.Context, q video.Query) (video.Ref, error) {
	gamePk, err := strconv.Atoi(strings.TrimSpace(q.GameID))
	if err != nil || gamePk <= 0 {
		return video.Ref{}, fmt.Errorf("savant: %w: game %q has no feed", video.ErrNotFound, q.GameID)
	}

	var feed gfResponse
	if err := c.getJSON(ctx, "/gf", url.Values{"game_pk": {strconv.Itoa(gamePk)}}, &feed); err != nil {
		return video.Ref{}, err
	}

	ranked := rankCandidates(q, feed.pitches(), c.minScore)
	if len(ranked) == 0 {
		return video.Ref{}, fmt.Errorf("savant: %w: no pitch in inning %d scored above %d", video.ErrNotFound, q.Inning, c.minScore)
	}
	if len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}

	var catalogErr error
	for _, cand := range ranked {
		ref, err := c.clipFor(ctx, cand)
		if err == nil {
			logging.Info(c.logger, "savant clip resolved",
				logging.FieldGameID, q.GameID,
				"play_uuid", cand.pitch.PlayID,
				"score", cand.score,
			)
			return ref, nil
		}
		if ctx.Err() != nil {
			return video.Ref{}, ctx.Err()
		}
		if errors.Is(err, video.ErrCatalogUnavailable) {
			catalogErr = err
		}
	}
	if catalogErr != nil {
		return video.Ref{}, catalogErr
	}
	return video.Ref{}, fmt.Errorf("savant: %w: no playable clip for %d candidates", video.ErrNotFound, len(ranked))
}

func (c *Client) clipFor(ctx context.Context, cand candidate) (video.Ref, error) {
	page, err := c.get(ctx, "/sporty-videos", url.Values{"playId": {cand.pitch.PlayID}})
	if err != nil {
		return video.Ref{}, err
	}
	for _, u := range extractVideoURLs(page) {
		contentType, ok := c.verify(ctx, u)
		if !ok {
			continue
		}
		return video.Ref{
			URL:         u,
			ContentType: contentType,
			PlayUUID:    cand.pitch.PlayID,
			Score:       cand.score,
		}, nil
	}
	return video.Ref{}, fmt.Errorf("savant: %w: page for %s had no playable clip", video.ErrNotFound, cand.pitch.PlayID)
}

// verify issues a HEAD request and accepts only 200 responses with a video content type.
func (c *Client) verify(ctx context.Context, rawURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn(c.logger, "savant clip check failed", "url", rawURL, "error", err)
		return "", false
	}
	defer resp.Body.Close()
	contentType := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(contentType, "video/") {
		return "", false
	}
	return contentType, true
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("savant: %w: decode %s: %v", video.ErrCatalogUnavailable, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("savant: %w: %v", video.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("savant: %w: %s", video.ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("savant: %w: unexpected status %d from %s", video.ErrCatalogUnavailable, resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("savant: %w: read %s: %v", video.ErrCatalogUnavailable, path, err)
	}
	return body, nil
}
