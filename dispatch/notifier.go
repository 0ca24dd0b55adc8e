// Package dispatch holds the outbound formatters: the review-channel webhook
// notifier and the approval callback client. Both are stateless and
// best-effort; callers decide what to do with a failed delivery.
package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gatekeeper/config"
	"gatekeeper/models"
)

// Display budgets for embed descriptions. Longer content is cut at budget-3
// and suffixed with an ellipsis.
const (
	pendingExcerptBudget = 1000
	statusExcerptBudget  = 500
)

// ErrNoWebhookEndpoint is returned when neither the settings store nor the
// static configuration provides a webhook URL. The send becomes a no-op.
var ErrNoWebhookEndpoint = errors.New("no webhook endpoint configured")

// SettingsSource provides the persisted overrides for outbound destinations.
type SettingsSource interface {
	WebhookURL() (string, bool)
	PublicBaseURL() (string, bool)
}

// WebhookNotifier formats and delivers review-channel messages as
// Discord-compatible webhook payloads (JSON POST with rich embeds).
type WebhookNotifier struct {
	settings          SettingsSource
	defaultWebhookURL string
	defaultBaseURL    string
	client            *http.Client
}

// NewWebhookNotifier constructs a notifier. The settings store takes
// precedence over the static defaults at send time, so runtime settings
// changes apply without a restart.
func NewWebhookNotifier(settings SettingsSource, defaultWebhookURL, defaultBaseURL string) *WebhookNotifier {
	return &WebhookNotifier{
		settings:          settings,
		defaultWebhookURL: strings.TrimSpace(defaultWebhookURL),
		defaultBaseURL:    strings.TrimSpace(defaultBaseURL),
		client:            &http.Client{},
	}
}

// Discord webhook wire format (the subset this service emits).
type webhookMessage struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color,omitempty"`
	Fields      []webhookField `json:"fields,omitempty"`
	Footer      *webhookFooter `json:"footer,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

const (
	colorPending  = 0xF1C40F
	colorApproved = 0x2ECC71
	colorRejected = 0xE74C3C
	colorPosted   = 0x3498DB
)

func statusColor(status models.PostStatus) int {
	switch status {
	case models.StatusApproved:
		return colorApproved
	case models.StatusRejected:
		return colorRejected
	case models.StatusPosted:
		return colorPosted
	default:
		return colorPending
	}
}

// AnnouncePending sends the review request for a newly submitted post,
// including approve/reject action links routed back into this service.
func (n *WebhookNotifier) AnnouncePending(p *models.Post) error {
	base := n.resolveBaseURL()
	fields := []webhookField{
		{
			Name: "Actions",
			Value: fmt.Sprintf("[Approve](%s/posts/%d/approve) | [Reject](%s/posts/%d/reject)",
				base, p.ID, base, p.ID),
		},
	}
	if p.Source != "" {
		fields = append([]webhookField{{Name: "Source", Value: p.Source, Inline: true}}, fields...)
	}

	msg := webhookMessage{Embeds: []webhookEmbed{{
		Title:       fmt.Sprintf("New submission #%d awaiting review", p.ID),
		Description: truncateExcerpt(p.Content, pendingExcerptBudget),
		Color:       colorPending,
		Fields:      fields,
		Footer:      &webhookFooter{Text: "Gatekeeper approval gateway"},
		Timestamp:   p.CreatedAt.UTC().Format(time.RFC3339),
	}}}

	return n.send(msg)
}

// AnnounceStatus sends a state-change notice for a post.
func (n *WebhookNotifier) AnnounceStatus(p *models.Post) error {
	msg := webhookMessage{Embeds: []webhookEmbed{{
		Title:       fmt.Sprintf("Submission #%d is now %s", p.ID, p.Status),
		Description: truncateExcerpt(p.Content, statusExcerptBudget),
		Color:       statusColor(p.Status),
		Footer:      &webhookFooter{Text: "Gatekeeper approval gateway"},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}}}

	return n.send(msg)
}

// Endpoint resolution order: settings store, then static config default.
func (n *WebhookNotifier) resolveEndpoint() (string, bool) {
	if n.settings != nil {
		if url, ok := n.settings.WebhookURL(); ok && strings.TrimSpace(url) != "" {
			return strings.TrimSpace(url), true
		}
	}
	if n.defaultWebhookURL != "" {
		return n.defaultWebhookURL, true
	}
	return "", false
}

func (n *WebhookNotifier) resolveBaseURL() string {
	if n.settings != nil {
		if base, ok := n.settings.PublicBaseURL(); ok && strings.TrimSpace(base) != "" {
			return strings.TrimRight(strings.TrimSpace(base), "/")
		}
	}
	if n.defaultBaseURL != "" {
		return strings.TrimRight(n.defaultBaseURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", config.Settings.Port)
}

func (n *WebhookNotifier) send(msg webhookMessage) error {
	endpoint, ok := n.resolveEndpoint()
	if !ok {
		return ErrNoWebhookEndpoint
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	resp, err := n.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// truncateExcerpt cuts s to the display budget, rune-aware, with a trailing
// ellipsis taking the last three slots.
func truncateExcerpt(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget-3]) + "..."
}
