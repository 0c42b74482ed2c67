package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/agapechurch/chms-backend/pkg/cache"
	"github.com/agapechurch/chms-backend/pkg/logger"
	"gorm.io/gorm"
)

// WorkflowService governs the review/approval state machine.
// Legal transitions: DRAFT/REJECTED -> REVIEW (submit), REVIEW -> SCHEDULED
// or PUBLISHED (approve), REVIEW -> REJECTED (reject). The scheduler owns
// SCHEDULED -> PUBLISHED and PUBLISHED -> ARCHIVED.
type WorkflowService interface {
	SubmitForReview(actor domain.Actor, ct domain.ContentType, id string) (domain.ContentItem, error)
	Approve(actor domain.Actor, ct domain.ContentType, id, comment string) (domain.ContentItem, error)
	Reject(actor domain.Actor, ct domain.ContentType, id, comment string) (domain.ContentItem, error)
}

type workflowService struct {
	store *repository.Store
	cache cache.Service
	now   func() time.Time
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(store *repository.Store, cacheSvc cache.Service) WorkflowService {
	return &workflowService{store: store, cache: cacheSvc, now: time.Now}
}

// SubmitForReview moves DRAFT or REJECTED content into REVIEW and clears
// any previous review metadata.
func (s *workflowService) SubmitForReview(actor domain.Actor, ct domain.ContentType, id string) (domain.ContentItem, error) {
	repo, err := s.store.Content(ct)
	if err != nil {
		return nil, err
	}

	item, err := repo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if item.GetStatus() != domain.StatusDraft && item.GetStatus() != domain.StatusRejected {
		return nil, fmt.Errorf("%w: cannot submit %s content for review", common.ErrInvalidState, item.GetStatus())
	}
	if actor.ID != item.GetAuthorID() && !actor.Role.Elevated() {
		return nil, common.ErrForbidden
	}

	rows, err := repo.UpdateGuarded(id,
		[]domain.ContentStatus{domain.StatusDraft, domain.StatusRejected},
		map[string]any{
			"status":         domain.StatusReview,
			"reviewer_id":    nil,
			"review_comment": nil,
			"reviewed_at":    nil,
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: content changed status concurrently", common.ErrInvalidState)
	}

	logger.Info("workflow: %s %s submitted for review by %s", ct, id, actor.ID)
	return repo.FindByID(id)
}

// Approve moves REVIEW content to SCHEDULED, or straight to PUBLISHED when
// the publish time is already due or was never set.
func (s *workflowService) Approve(actor domain.Actor, ct domain.ContentType, id, comment string) (domain.ContentItem, error) {
	if !actor.Role.Elevated() {
		return nil, common.ErrForbidden
	}

	repo, err := s.store.Content(ct)
	if err != nil {
		return nil, err
	}

	item, err := repo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if item.GetStatus() != domain.StatusReview {
		return nil, fmt.Errorf("%w: only content in review can be approved", common.ErrInvalidState)
	}

	now := s.now()
	fields := map[string]any{
		"status":         domain.StatusScheduled,
		"reviewer_id":    actor.ID,
		"review_comment": nullableString(comment),
		"reviewed_at":    now,
	}

	// Collapse approval latency: publish immediately when due.
	published := false
	if pubAt := item.GetPublishedAt(); pubAt == nil {
		fields["status"] = domain.StatusPublished
		fields["published_at"] = now
		published = true
	} else if !pubAt.After(now) {
		fields["status"] = domain.StatusPublished
		published = true
	}

	rows, err := repo.UpdateGuarded(id, []domain.ContentStatus{domain.StatusReview}, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: content changed status concurrently", common.ErrInvalidState)
	}

	if published {
		s.invalidateLists(ct)
	}
	logger.Info("workflow: %s %s approved by %s (published=%t)", ct, id, actor.ID, published)
	return repo.FindByID(id)
}

// Reject moves REVIEW content to REJECTED. The comment is mandatory so the
// author knows what to fix.
func (s *workflowService) Reject(actor domain.Actor, ct domain.ContentType, id, comment string) (domain.ContentItem, error) {
	if !actor.Role.Elevated() {
		return nil, common.ErrForbidden
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: rejection comment is required", common.ErrInvalidInput)
	}

	repo, err := s.store.Content(ct)
	if err != nil {
		return nil, err
	}

	item, err := repo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if item.GetStatus() != domain.StatusReview {
		return nil, fmt.Errorf("%w: only content in review can be rejected", common.ErrInvalidState)
	}

	rows, err := repo.UpdateGuarded(id, []domain.ContentStatus{domain.StatusReview},
		map[string]any{
			"status":         domain.StatusRejected,
			"reviewer_id":    actor.ID,
			"review_comment": strings.TrimSpace(comment),
			"reviewed_at":    s.now(),
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: content changed status concurrently", common.ErrInvalidState)
	}

	logger.Info("workflow: %s %s rejected by %s", ct, id, actor.ID)
	return repo.FindByID(id)
}

func (s *workflowService) invalidateLists(ct domain.ContentType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublished(context.Background(), string(ct)); err != nil {
		logger.Warn("cache invalidation failed for %s: %v", ct, err)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}

func nullableString(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
