package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/agapechurch/chms-backend/pkg/cache"
	"github.com/agapechurch/chms-backend/pkg/logger"
)

// AnnouncementService business logic for announcements
type AnnouncementService interface {
	Create(actor domain.Actor, req *domain.CreateAnnouncementRequest) (*domain.Announcement, error)
	Get(id string) (*domain.Announcement, error)
	ListPublished(page, limit int) ([]*domain.Announcement, *common.Meta, error)
	ListByAuthor(actor domain.Actor, page, limit int) ([]*domain.Announcement, *common.Meta, error)
	Update(actor domain.Actor, id string, req *domain.UpdateAnnouncementRequest) (*domain.Announcement, error)
	Delete(actor domain.Actor, id string) error
}

type announcementService struct {
	store *repository.Store
	cache cache.Service
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(store *repository.Store, cacheSvc cache.Service) AnnouncementService {
	return &announcementService{store: store, cache: cacheSvc}
}

// listPage is the cached representation of one published listing page
type listPage[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

func (s *announcementService) Create(actor domain.Actor, req *domain.CreateAnnouncementRequest) (*domain.Announcement, error) {
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrInvalidInput, priority)
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	a := &domain.Announcement{
		Title:        req.Title,
		Body:         req.Body,
		Status:       domain.StatusDraft,
		Version:      1,
		AuthorID:     actor.ID,
		PublishedAt:  req.PublishedAt,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Priority:     priority,
		TargetGroups: req.TargetGroups,
	}
	if err := s.store.Announcements.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Get(id string) (*domain.Announcement, error) {
	a, err := s.store.Announcements.Get(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (s *announcementService) ListPublished(page, limit int) ([]*domain.Announcement, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	ctx := context.Background()

	if s.cache != nil {
		if data, err := s.cache.GetPublished(ctx, string(domain.ContentTypeAnnouncement), page, limit); err == nil {
			var cached listPage[*domain.Announcement]
			if json.Unmarshal(data, &cached) == nil {
				return cached.Items, &common.Meta{Page: page, Limit: limit, Total: cached.Total}, nil
			}
		}
	}

	items, total, err := s.store.Announcements.ListPublished(page, limit)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, string(domain.ContentTypeAnnouncement), page, limit,
			listPage[*domain.Announcement]{Items: items, Total: total}); err != nil {
			logger.Warn("cache set failed for announcements: %v", err)
		}
	}
	return items, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *announcementService) ListByAuthor(actor domain.Actor, page, limit int) ([]*domain.Announcement, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.store.Announcements.ListByAuthor(actor.ID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return items, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *announcementService) Update(actor domain.Actor, id string, req *domain.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	a, err := s.store.Announcements.Get(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := checkEditable(actor, a.AuthorID, a.Status); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.StartDate != nil {
		a.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		a.EndDate = req.EndDate
	}
	if req.PublishedAt != nil {
		a.PublishedAt = req.PublishedAt
	}
	if req.Priority != nil {
		if !domain.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", common.ErrInvalidInput, *req.Priority)
		}
		a.Priority = *req.Priority
	}
	if req.TargetGroups != nil {
		a.TargetGroups = req.TargetGroups
	}
	if err := validateDateRange(a.StartDate, a.EndDate); err != nil {
		return nil, err
	}

	if err := s.store.Announcements.Update(a); err != nil {
		return nil, err
	}
	if a.Status == domain.StatusPublished {
		s.invalidate()
	}
	return s.store.Announcements.Get(id)
}

func (s *announcementService) Delete(actor domain.Actor, id string) error {
	a, err := s.store.Announcements.Get(id)
	if err != nil {
		return mapNotFound(err)
	}
	if err := checkEditable(actor, a.AuthorID, a.Status); err != nil {
		return err
	}

	// History rows cascade with their content.
	err = s.store.Transaction(func(tx *repository.Store) error {
		if err := tx.Versions.DeleteByContent(domain.ContentTypeAnnouncement, id); err != nil {
			return err
		}
		return tx.Announcements.Delete(id)
	})
	if err != nil {
		return err
	}

	if a.Status == domain.StatusPublished {
		s.invalidate()
	}
	logger.Info("announcement %s deleted by %s", id, actor.ID)
	return nil
}

func (s *announcementService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublished(context.Background(), string(domain.ContentTypeAnnouncement)); err != nil {
		logger.Warn("cache invalidation failed for announcements: %v", err)
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// checkEditable enforces ownership: authors may edit their own content only
// while it is DRAFT or REJECTED; elevated roles may edit at any stage.
func checkEditable(actor domain.Actor, authorID string, status domain.ContentStatus) error {
	if actor.Role.Elevated() {
		return nil
	}
	if actor.ID != authorID {
		return common.ErrForbidden
	}
	if status != domain.StatusDraft && status != domain.StatusRejected {
		return fmt.Errorf("%w: content in %s can no longer be edited by its author", common.ErrInvalidState, status)
	}
	return nil
}

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date must not be before start date", common.ErrInvalidInput)
	}
	return nil
}
