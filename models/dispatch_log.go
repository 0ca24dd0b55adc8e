package models

import "time"

// Dispatch kinds recorded when an outbound delivery fails.
const (
	DispatchKindNotification = "notification"
	DispatchKindCallback     = "callback"
)

// DispatchLog records a failed outbound delivery (webhook notification or
// approval callback). Failures never surface to API callers, so this is the
// only place an operator can see them besides the log file.
type DispatchLog struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`   // notification, callback
	PostID    uint      `json:"postId"` // 0 when not tied to a single post
	Target    string    `json:"target"` // destination URL (may be empty when unresolved)
	Message   string    `json:"message"`
}
