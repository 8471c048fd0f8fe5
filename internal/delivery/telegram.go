package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	telegramName       = "telegram"
	defaultTelegramAPI = "https://api.telegram.org"
	// Captions are capped at 1024 characters; the fixed lines need roughly 300.
	telegramMaxDescLength = 600
)

// TelegramConfig configures bot delivery.
type TelegramConfig struct {
	BotToken   string
	ChatID     string
	BaseURL    string
	MaxBytes   int64
	HTTPClient *http.Client
}

// Telegram sends GIFs with sendAnimation and an HTML caption.
type Telegram struct {
	token      string
	chatID     string
	baseURL    string
	maxBytes   int64
	httpClient httpDoer
	policy     *bluemonday.Policy
}

// NewTelegram constructs a Telegram deliverer.
func NewTelegram(cfg TelegramConfig) *Telegram {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = defaultTelegramAPI
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Telegram{
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		baseURL:    base,
		maxBytes:   maxBytes,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		policy:     bluemonday.StrictPolicy(),
	}
}

func (t *Telegram) Name() string { return telegramName }

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
}

// Deliver uploads the GIF via sendAnimation.
func (t *Telegram) Deliver(ctx context.Context, a Artifact, c Caption) error {
	if t.token == "" || t.chatID == "" {
		return fmt.Errorf("%s: %w", telegramName, ErrNotConfigured)
	}
	if err := checkSize(telegramName, a, t.maxBytes); err != nil {
		return err
	}

	body, contentType, err := multipartBody(
		[]formField{
			{name: "chat_id", value: t.chatID},
			{name: "caption", value: t.caption(c)},
			{name: "parse_mode", value: "HTML"},
		},
		formFile{field: "animation", filename: a.Filename, contentType: "image/gif", data: a.Data},
	)
	if err != nil {
		return fmt.Errorf("%s: encode form: %w", telegramName, err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendAnimation", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", telegramName, ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		// The request URL carries the bot token; keep it out of the error.
		return fmt.Errorf("%s: %w: request failed", telegramName, ErrDeliveryFailed)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(telegramName, resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%s: %w: read response: %v", telegramName, ErrDeliveryFailed, err)
	}
	var out telegramResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("%s: %w: decode response: %v", telegramName, ErrDeliveryFailed, err)
	}
	if !out.OK {
		return &StatusError{Target: telegramName, StatusCode: out.ErrorCode, Message: out.Description}
	}
	return nil
}

// caption renders the HTML caption. Upstream text is sanitised before our own markup is added.
func (t *Telegram) caption(c Caption) string {
	clean := t.policy.Sanitize
	desc := c.Description
	if runes := []rune(desc); len(runes) > telegramMaxDescLength {
		desc = string(runes[:telegramMaxDescLength]) + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", clean(c.Event))
	if desc != "" {
		fmt.Fprintf(&b, "%s\n", clean(desc))
	}
	fmt.Fprintf(&b, "\n<b>Matchup:</b> %s\n", clean(c.Matchup()))
	fmt.Fprintf(&b, "<b>Impact:</b> %s\n", c.Impact())
	fmt.Fprintf(&b, "<b>Inning:</b> %s\n", c.InningLabel())
	fmt.Fprintf(&b, "<b>Batter:</b> %s\n", clean(c.Batter))
	fmt.Fprintf(&b, "<b>Pitcher:</b> %s\n", clean(c.Pitcher))
	fmt.Fprintf(&b, "<b>Score:</b> %s", c.Score())
	return b.String()
}
