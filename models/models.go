package models

import (
	"strings"
	"time"
)

// PostStatus is the approval workflow state of a submission.
type PostStatus string

const (
	StatusPending  PostStatus = "PENDING"
	StatusApproved PostStatus = "APPROVED"
	StatusRejected PostStatus = "REJECTED"
	StatusPosted   PostStatus = "POSTED"
)

// ValidStatus reports whether s is one of the four workflow states.
func ValidStatus(s PostStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPosted:
		return true
	}
	return false
}

// Post is a content submission moving through the approval workflow.
// Transitions are monotonic: PENDING -> {APPROVED, REJECTED}, APPROVED -> POSTED.
// ApprovedAt/PostedAt are set exactly once, when the matching transition commits.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Source      string     `json:"source,omitempty"`
	Status      PostStatus `gorm:"size:16;not null;default:'PENDING';index" json:"status"`
	CallbackURL string     `gorm:"not null" json:"callbackUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	PostedAt    *time.Time `json:"postedAt"`
}

// PostCreate is the submission request payload.
type PostCreate struct {
	Content     string `json:"content"`
	Source      string `json:"source"`
	CallbackURL string `json:"callbackUrl"`
}

// Normalize trims whitespace from input fields
func (p *PostCreate) Normalize() {
	p.Content = strings.TrimSpace(p.Content)
	p.Source = strings.TrimSpace(p.Source)
	p.CallbackURL = strings.TrimSpace(p.CallbackURL)
}

// PostReceipt is the minimal acknowledgement returned on submission.
type PostReceipt struct {
	ID        uint       `json:"id"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Receipt builds the submission acknowledgement for a post.
func (p *Post) Receipt() PostReceipt {
	return PostReceipt{ID: p.ID, Status: p.Status, CreatedAt: p.CreatedAt}
}

// PostStats aggregates per-status counts.
type PostStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Posted   int64 `json:"posted"`
}
