package dispatch

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gatekeeper/models"
)

type fakeSettings struct {
	webhookURL string
	baseURL    string
}

func (f *fakeSettings) WebhookURL() (string, bool) {
	return f.webhookURL, f.webhookURL != ""
}

func (f *fakeSettings) PublicBaseURL() (string, bool) {
	return f.baseURL, f.baseURL != ""
}

type capturedWebhook struct {
	body   []byte
	status int
}

func newWebhookServer(t *testing.T, status int) (*httptest.Server, *capturedWebhook) {
	t.Helper()
	captured := &capturedWebhook{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read webhook body: %v", err)
		}
		captured.body = body
		w.WriteHeader(captured.status)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func decodeMessage(t *testing.T, body []byte) webhookMessage {
	t.Helper()
	var msg webhookMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("decode webhook payload: %v", err)
	}
	if len(msg.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(msg.Embeds))
	}
	return msg
}

func TestAnnouncePendingPayload(t *testing.T) {
	srv, captured := newWebhookServer(t, http.StatusNoContent)
	n := NewWebhookNotifier(&fakeSettings{webhookURL: srv.URL, baseURL: "https://gw.example/"}, "", "")

	post := &models.Post{
		ID:        7,
		Content:   "Hello reviewers",
		Source:    "newsletter",
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := n.AnnouncePending(post); err != nil {
		t.Fatalf("announce pending: %v", err)
	}

	embed := decodeMessage(t, captured.body).Embeds[0]
	if !strings.Contains(embed.Title, "#7") {
		t.Fatalf("title %q should reference the submission id", embed.Title)
	}
	if embed.Description != "Hello reviewers" {
		t.Fatalf("description = %q", embed.Description)
	}

	var actions string
	for _, field := range embed.Fields {
		if field.Name == "Actions" {
			actions = field.Value
		}
	}
	if !strings.Contains(actions, "https://gw.example/posts/7/approve") ||
		!strings.Contains(actions, "https://gw.example/posts/7/reject") {
		t.Fatalf("action links missing or wrong: %q", actions)
	}
}

func TestAnnouncePendingTruncation(t *testing.T) {
	srv, captured := newWebhookServer(t, http.StatusOK)
	n := NewWebhookNotifier(&fakeSettings{webhookURL: srv.URL}, "", "")

	long := strings.Repeat("a", 1500)
	post := &models.Post{ID: 1, Content: long, CreatedAt: time.Now()}

	if err := n.AnnouncePending(post); err != nil {
		t.Fatalf("announce pending: %v", err)
	}

	description := decodeMessage(t, captured.body).Embeds[0].Description
	if len(description) != 1000 {
		t.Fatalf("description length = %d, want 1000", len(description))
	}
	if !strings.HasSuffix(description, "...") {
		t.Fatalf("truncated description must end with ellipsis")
	}
}

func TestAnnounceStatusTruncation(t *testing.T) {
	srv, captured := newWebhookServer(t, http.StatusOK)
	n := NewWebhookNotifier(&fakeSettings{webhookURL: srv.URL}, "", "")

	long := strings.Repeat("b", 800)
	post := &models.Post{ID: 2, Content: long, Status: models.StatusApproved}

	if err := n.AnnounceStatus(post); err != nil {
		t.Fatalf("announce status: %v", err)
	}

	embed := decodeMessage(t, captured.body).Embeds[0]
	if len(embed.Description) != 500 {
		t.Fatalf("description length = %d, want 500", len(embed.Description))
	}
	if !strings.Contains(embed.Title, "APPROVED") {
		t.Fatalf("title %q should carry the new status", embed.Title)
	}
}

func TestNotifierEndpointResolution(t *testing.T) {
	srv, captured := newWebhookServer(t, http.StatusOK)

	// Settings override wins over the static default.
	n := NewWebhookNotifier(&fakeSettings{webhookURL: srv.URL}, "https://unreachable.example/hook", "")
	if err := n.AnnounceStatus(&models.Post{ID: 1, Status: models.StatusRejected}); err != nil {
		t.Fatalf("announce via settings endpoint: %v", err)
	}
	if len(captured.body) == 0 {
		t.Fatalf("settings endpoint was not used")
	}

	// Static default is the fallback.
	captured.body = nil
	n = NewWebhookNotifier(&fakeSettings{}, srv.URL, "")
	if err := n.AnnounceStatus(&models.Post{ID: 2, Status: models.StatusRejected}); err != nil {
		t.Fatalf("announce via default endpoint: %v", err)
	}
	if len(captured.body) == 0 {
		t.Fatalf("default endpoint was not used")
	}

	// Neither configured: reported failure, no panic.
	n = NewWebhookNotifier(&fakeSettings{}, "", "")
	if err := n.AnnounceStatus(&models.Post{ID: 3}); !errors.Is(err, ErrNoWebhookEndpoint) {
		t.Fatalf("want ErrNoWebhookEndpoint, got %v", err)
	}
}

func TestNotifierReportsNonSuccessStatus(t *testing.T) {
	srv, _ := newWebhookServer(t, http.StatusBadGateway)
	n := NewWebhookNotifier(&fakeSettings{webhookURL: srv.URL}, "", "")

	if err := n.AnnounceStatus(&models.Post{ID: 1, Status: models.StatusPosted}); err == nil {
		t.Fatalf("non-2xx webhook response must be reported as an error")
	}
}

func TestTruncateExcerpt(t *testing.T) {
	tests := []struct {
		in     string
		budget int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"elevenchars", 10, "elevenc..."},
		{"héllo wörld!", 10, "héllo w..."},
	}

	for _, tt := range tests {
		if got := truncateExcerpt(tt.in, tt.budget); got != tt.want {
			t.Fatalf("truncateExcerpt(%q, %d) = %q, want %q", tt.in, tt.budget, got, tt.want)
		}
	}
}
