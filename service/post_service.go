package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gatekeeper/core"
	"gatekeeper/models"

	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// Notifier announces workflow events to the human review channel.
// Implementations must be safe for concurrent use; every call is best-effort.
type Notifier interface {
	AnnouncePending(p *models.Post) error
	AnnounceStatus(p *models.Post) error
}

// CallbackSender delivers the approval callback to the submitter.
type CallbackSender interface {
	SendApproval(p *models.Post) error
}

// PostService owns the approval state machine: it decides which transitions
// are legal, applies them, and triggers the outbound side effects.
type PostService struct {
	db       *gorm.DB
	notifier Notifier
	callback CallbackSender
}

// NewPostService constructs a post service
func NewPostService(db *gorm.DB, notifier Notifier, callback CallbackSender) *PostService {
	return &PostService{
		db:       db,
		notifier: notifier,
		callback: callback,
	}
}

// Submit validates the request and creates a PENDING post. The review-channel
// notification is fire-and-forget: the submitter never waits for it and never
// sees its failure.
func (s *PostService) Submit(req models.PostCreate) (*models.Post, error) {
	req.Normalize()

	if req.Content == "" {
		return nil, wrapSentinel("content is required and must be a non-empty string", ErrValidation)
	}
	if req.CallbackURL == "" {
		return nil, wrapSentinel("callbackUrl is required and must be a non-empty string", ErrValidation)
	}

	post := models.Post{
		Content:     req.Content,
		Source:      req.Source,
		Status:      models.StatusPending,
		CallbackURL: req.CallbackURL,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.announcePendingAsync(&post)

	return &post, nil
}

// Get fetches a post by ID
func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrapSentinel(fmt.Sprintf("post not found: %d", id), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Approve transitions PENDING -> APPROVED, then delivers the approval
// callback synchronously. The callback runs after the transition has
// committed: a failed delivery is logged and does not roll anything back.
func (s *PostService) Approve(id uint) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if post.Status != models.StatusPending {
		return nil, wrapSentinel(
			fmt.Sprintf("post %d already %s", id, strings.ToLower(string(post.Status))),
			ErrInvalidState)
	}

	now := time.Now()
	post.Status = models.StatusApproved
	post.ApprovedAt = &now

	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if s.callback != nil {
		if err := s.callback.SendApproval(post); err != nil {
			core.LogDispatchFailure(models.DispatchKindCallback, post.ID, post.CallbackURL, err)
		}
	}

	s.announceStatusAsync(post)

	return post, nil
}

// Reject transitions PENDING -> REJECTED. No callback is sent.
func (s *PostService) Reject(id uint) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if post.Status != models.StatusPending {
		return nil, wrapSentinel(
			fmt.Sprintf("post %d already %s", id, strings.ToLower(string(post.Status))),
			ErrInvalidState)
	}

	post.Status = models.StatusRejected

	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.announceStatusAsync(post)

	return post, nil
}

// ConfirmPosted transitions APPROVED -> POSTED after the downstream system
// reports the content went out.
func (s *PostService) ConfirmPosted(id uint) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if post.Status != models.StatusApproved {
		// Status is reported as-is here, unlike approve/reject.
		return nil, wrapSentinel(
			fmt.Sprintf("post %d must be APPROVED before it can be marked posted (current status: %s)", id, post.Status),
			ErrInvalidState)
	}

	now := time.Now()
	post.Status = models.StatusPosted
	post.PostedAt = &now

	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.announceStatusAsync(post)

	return post, nil
}

// PostPage is one page of posts plus the pagination values actually applied.
type PostPage struct {
	Posts  []models.Post
	Total  int64
	Limit  int
	Offset int
}

// List returns posts newest-first, optionally filtered by status.
// limit defaults to 50 and caps at 100; offset below zero is treated as zero.
func (s *PostService) List(status string, limit, offset int) (*PostPage, error) {
	query := s.db.Model(&models.Post{})

	if strings.TrimSpace(status) != "" {
		st := models.PostStatus(strings.ToUpper(strings.TrimSpace(status)))
		if !models.ValidStatus(st) {
			return nil, wrapSentinel(fmt.Sprintf("unknown status filter: %s", status), ErrValidation)
		}
		query = query.Where("status = ?", st)
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	if err := query.Order("created_at desc, id desc").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &PostPage{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// Delete removes a post
func (s *PostService) Delete(id uint) error {
	post, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(post).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Stats returns per-status counts plus a total.
func (s *PostService) Stats() (*models.PostStats, error) {
	type statusCount struct {
		Status models.PostStatus
		Count  int64
	}

	var rows []statusCount
	if err := s.db.Model(&models.Post{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate post stats: %w", err)
	}

	stats := &models.PostStats{}
	for _, row := range rows {
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.Count
		case models.StatusApproved:
			stats.Approved = row.Count
		case models.StatusRejected:
			stats.Rejected = row.Count
		case models.StatusPosted:
			stats.Posted = row.Count
		}
		stats.Total += row.Count
	}

	return stats, nil
}

// announcePendingAsync fires the review request without blocking the caller.
// The snapshot keeps the goroutine off the caller's copy of the record.
func (s *PostService) announcePendingAsync(p *models.Post) {
	if s.notifier == nil {
		return
	}
	snapshot := *p
	go func() {
		if err := s.notifier.AnnouncePending(&snapshot); err != nil {
			core.LogDispatchFailure(models.DispatchKindNotification, snapshot.ID, "", err)
		}
	}()
}

func (s *PostService) announceStatusAsync(p *models.Post) {
	if s.notifier == nil {
		return
	}
	snapshot := *p
	go func() {
		if err := s.notifier.AnnounceStatus(&snapshot); err != nil {
			core.LogDispatchFailure(models.DispatchKindNotification, snapshot.ID, "", err)
		}
	}()
}
