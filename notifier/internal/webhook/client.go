package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/precinct-systems/precinct-stack/notifier/internal/models"
)

// DefaultTimeout bounds one webhook delivery attempt.
const DefaultTimeout = 5 * time.Second

// Client posts events to a Discord-compatible webhook URL as embeds.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// discordPayload is the subset of the Discord webhook API we use.
type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Fields    []discordField `json:"fields,omitempty"`
	Footer    *discordFooter `json:"footer,omitempty"`
	Timestamp string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// actionColors picks the embed accent per event action prefix.
var actionColors = map[string]int{
	"arrest_create":          0xE74C3C,
	"wanted_create":          0xE67E22,
	"wanted_capture":         0x2ECC71,
	"bo_create":              0x3498DB,
	"investigation_finalize": 0x9B59B6,
	"fine_create":            0xF1C40F,
	"seizure_create":         0x95A5A6,
	"news_create":            0x1ABC9C,
	"license_request":        0x34495E,
	"license_approve":        0x2ECC71,
	"license_deny":           0xC0392B,
	"quiz_submit":            0x7F8C8D,
}

const defaultColor = 0x5865F2

// Send delivers one event. Callers decide whether a failure matters.
func (c *Client) Send(ctx context.Context, event *models.Event) error {
	embed := discordEmbed{
		Title:     event.Title,
		Color:     embedColor(event.Action),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	}

	for name, value := range event.Fields {
		embed.Fields = append(embed.Fields, discordField{
			Name:   name,
			Value:  value,
			Inline: true,
		})
	}
	if event.ActorName != "" {
		embed.Footer = &discordFooter{Text: "Por " + event.ActorName}
	}

	jsonData, err := json.Marshal(discordPayload{Embeds: []discordEmbed{embed}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Precinct-Notifier/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func embedColor(action string) int {
	if color, ok := actionColors[action]; ok {
		return color
	}
	return defaultColor
}
