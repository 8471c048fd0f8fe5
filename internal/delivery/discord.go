package delivery

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	discordName  = "discord"
	discordColor = 0xFF6B35
)

// DiscordConfig configures webhook delivery.
type DiscordConfig struct {
	WebhookURL string
	Username   string
	MaxBytes   int64
	HTTPClient *http.Client
}

// Discord posts GIFs to a channel webhook as an embed with an attached file.
type Discord struct {
	webhookURL string
	username   string
	maxBytes   int64
	httpClient httpDoer
	now        func() time.Time
}

// NewDiscord constructs a Discord deliverer.
func NewDiscord(cfg DiscordConfig) *Discord {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Discord{
		webhookURL: cfg.WebhookURL,
		username:   cfg.Username,
		maxBytes:   maxBytes,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

func (d *Discord) Name() string { return discordName }

type discordPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
	Image       *discordImage  `json:"image,omitempty"`
	Footer      discordFooter  `json:"footer"`
	Timestamp   string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordImage struct {
	URL string `json:"url"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Deliver uploads the GIF with payload_json describing the play.
func (d *Discord) Deliver(ctx context.Context, a Artifact, c Caption) error {
	if d.webhookURL == "" {
		return fmt.Errorf("%s: %w", discordName, ErrNotConfigured)
	}
	if err := checkSize(discordName, a, d.maxBytes); err != nil {
		return err
	}

	payload, err := json.Marshal(d.payload(a, c))
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", discordName, err)
	}
	body, contentType, err := multipartBody(
		[]formField{{name: "payload_json", value: string(payload)}},
		formFile{field: "files[0]", filename: a.Filename, contentType: "image/gif", data: a.Data},
	)
	if err != nil {
		return fmt.Errorf("%s: encode form: %w", discordName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, body)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", discordName, ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", discordName, ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError(discordName, resp)
	}
	return nil
}

func (d *Discord) payload(a Artifact, c Caption) discordPayload {
	return discordPayload{
		Username: d.username,
		Embeds: []discordEmbed{{
			Title:       c.Event,
			Description: c.Description,
			Color:       discordColor,
			Fields: []discordField{
				{Name: "Matchup", Value: c.Matchup(), Inline: true},
				{Name: "Impact", Value: c.Impact(), Inline: true},
				{Name: "Inning", Value: c.InningLabel(), Inline: true},
				{Name: "Batter", Value: c.Batter, Inline: true},
				{Name: "Pitcher", Value: c.Pitcher, Inline: true},
				{Name: "Score", Value: c.Score(), Inline: true},
			},
			Image:     &discordImage{URL: "attachment://" + a.Filename},
			Footer:    discordFooter{Text: footerText},
			Timestamp: d.now().UTC().Format(time.RFC3339),
		}},
	}
}
