package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"gatekeeper/models"
)

// CallbackClient delivers the approval callback to the URL stored with the
// submission. Delivery is at-most-once: no retry queue exists, and the caller
// treats a failure as log-and-continue because the transition has already
// committed.
type CallbackClient struct {
	client *http.Client
}

// NewCallbackClient constructs a callback client.
func NewCallbackClient() *CallbackClient {
	return &CallbackClient{client: &http.Client{}}
}

// approvalPayload is the wire body POSTed to the stored callback URL.
type approvalPayload struct {
	ID      uint              `json:"id"`
	Status  models.PostStatus `json:"status"`
	Content string            `json:"content"`
}

// SendApproval POSTs {id, status, content} to the post's callback URL.
// A non-2xx response is an error; the caller decides it is non-fatal.
func (c *CallbackClient) SendApproval(p *models.Post) error {
	body, err := json.Marshal(approvalPayload{
		ID:      p.ID,
		Status:  p.Status,
		Content: p.Content,
	})
	if err != nil {
		return fmt.Errorf("encode callback payload: %w", err)
	}

	resp, err := c.client.Post(p.CallbackURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post callback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}
	return nil
}
