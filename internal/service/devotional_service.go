package service

import (
	"context"
	"encoding/json"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/agapechurch/chms-backend/pkg/cache"
	"github.com/agapechurch/chms-backend/pkg/logger"
)

// DevotionalService business logic for devotionals
type DevotionalService interface {
	Create(actor domain.Actor, req *domain.CreateDevotionalRequest) (*domain.Devotional, error)
	Get(id string) (*domain.Devotional, error)
	ListPublished(page, limit int) ([]*domain.Devotional, *common.Meta, error)
	ListByAuthor(actor domain.Actor, page, limit int) ([]*domain.Devotional, *common.Meta, error)
	Update(actor domain.Actor, id string, req *domain.UpdateDevotionalRequest) (*domain.Devotional, error)
	Delete(actor domain.Actor, id string) error
}

type devotionalService struct {
	store *repository.Store
	cache cache.Service
}

// NewDevotionalService creates a new DevotionalService
func NewDevotionalService(store *repository.Store, cacheSvc cache.Service) DevotionalService {
	return &devotionalService{store: store, cache: cacheSvc}
}

func (s *devotionalService) Create(actor domain.Actor, req *domain.CreateDevotionalRequest) (*domain.Devotional, error) {
	d := &domain.Devotional{
		Title:       req.Title,
		Body:        req.Body,
		Status:      domain.StatusDraft,
		Version:     1,
		AuthorID:    actor.ID,
		PublishedAt: req.PublishedAt,
		Scripture:   req.Scripture,
		Tags:        req.Tags,
		Featured:    req.Featured,
	}
	if err := s.store.Devotionals.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *devotionalService) Get(id string) (*domain.Devotional, error) {
	d, err := s.store.Devotionals.Get(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return d, nil
}

func (s *devotionalService) ListPublished(page, limit int) ([]*domain.Devotional, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	ctx := context.Background()

	if s.cache != nil {
		if data, err := s.cache.GetPublished(ctx, string(domain.ContentTypeDevotional), page, limit); err == nil {
			var cached listPage[*domain.Devotional]
			if json.Unmarshal(data, &cached) == nil {
				return cached.Items, &common.Meta{Page: page, Limit: limit, Total: cached.Total}, nil
			}
		}
	}

	items, total, err := s.store.Devotionals.ListPublished(page, limit)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, string(domain.ContentTypeDevotional), page, limit,
			listPage[*domain.Devotional]{Items: items, Total: total}); err != nil {
			logger.Warn("cache set failed for devotionals: %v", err)
		}
	}
	return items, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *devotionalService) ListByAuthor(actor domain.Actor, page, limit int) ([]*domain.Devotional, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.store.Devotionals.ListByAuthor(actor.ID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return items, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *devotionalService) Update(actor domain.Actor, id string, req *domain.UpdateDevotionalRequest) (*domain.Devotional, error) {
	d, err := s.store.Devotionals.Get(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := checkEditable(actor, d.AuthorID, d.Status); err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Body != nil {
		d.Body = *req.Body
	}
	if req.Scripture != nil {
		d.Scripture = *req.Scripture
	}
	if req.Tags != nil {
		d.Tags = req.Tags
	}
	if req.Featured != nil {
		d.Featured = *req.Featured
	}
	if req.PublishedAt != nil {
		d.PublishedAt = req.PublishedAt
	}

	if err := s.store.Devotionals.Update(d); err != nil {
		return nil, err
	}
	if d.Status == domain.StatusPublished {
		s.invalidate()
	}
	return s.store.Devotionals.Get(id)
}

func (s *devotionalService) Delete(actor domain.Actor, id string) error {
	d, err := s.store.Devotionals.Get(id)
	if err != nil {
		return mapNotFound(err)
	}
	if err := checkEditable(actor, d.AuthorID, d.Status); err != nil {
		return err
	}

	err = s.store.Transaction(func(tx *repository.Store) error {
		if err := tx.Versions.DeleteByContent(domain.ContentTypeDevotional, id); err != nil {
			return err
		}
		return tx.Devotionals.Delete(id)
	})
	if err != nil {
		return err
	}

	if d.Status == domain.StatusPublished {
		s.invalidate()
	}
	logger.Info("devotional %s deleted by %s", id, actor.ID)
	return nil
}

func (s *devotionalService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublished(context.Background(), string(domain.ContentTypeDevotional)); err != nil {
		logger.Warn("cache invalidation failed for devotionals: %v", err)
	}
}
