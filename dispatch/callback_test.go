package dispatch

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatekeeper/models"
)

func TestSendApprovalPayload(t *testing.T) {
	var captured []byte
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read callback body: %v", err)
		}
		captured = body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCallbackClient()
	post := &models.Post{
		ID:          12,
		Content:     "Hello",
		Status:      models.StatusApproved,
		CallbackURL: srv.URL,
	}

	if err := c.SendApproval(post); err != nil {
		t.Fatalf("send approval: %v", err)
	}

	if contentType != "application/json" {
		t.Fatalf("content type = %q", contentType)
	}

	var payload struct {
		ID      uint   `json:"id"`
		Status  string `json:"status"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("decode callback body: %v", err)
	}
	if payload.ID != 12 || payload.Status != "APPROVED" || payload.Content != "Hello" {
		t.Fatalf("unexpected callback body: %+v", payload)
	}
}

func TestSendApprovalNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCallbackClient()
	post := &models.Post{ID: 1, Status: models.StatusApproved, CallbackURL: srv.URL}

	if err := c.SendApproval(post); err == nil {
		t.Fatalf("non-2xx callback response must be reported as an error")
	}
}

func TestSendApprovalTransportError(t *testing.T) {
	c := NewCallbackClient()
	post := &models.Post{ID: 1, Status: models.StatusApproved, CallbackURL: "http://127.0.0.1:1/unreachable"}

	if err := c.SendApproval(post); err == nil {
		t.Fatalf("transport failure must be reported as an error")
	}
}
