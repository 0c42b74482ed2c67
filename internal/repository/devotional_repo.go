package repository

import (
	"fmt"
	"time"

	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DevotionalRepository data access for devotionals
type DevotionalRepository struct {
	db *gorm.DB
}

// NewDevotionalRepository creates a new DevotionalRepository
func NewDevotionalRepository(db *gorm.DB) *DevotionalRepository {
	return &DevotionalRepository{db: db}
}

func (r *DevotionalRepository) Type() domain.ContentType {
	return domain.ContentTypeDevotional
}

func (r *DevotionalRepository) Create(d *domain.Devotional) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return r.db.Create(d).Error
}

// Get returns the devotional by id
func (r *DevotionalRepository) Get(id string) (*domain.Devotional, error) {
	var d domain.Devotional
	if err := r.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DevotionalRepository) FindByID(id string) (domain.ContentItem, error) {
	d, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DevotionalRepository) UpdateGuarded(id string, from []domain.ContentStatus, fields map[string]any) (int64, error) {
	q := r.db.Model(&domain.Devotional{}).Where("id = ?", id)
	if len(from) > 0 {
		q = q.Where("status IN ?", from)
	}
	res := q.Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *DevotionalRepository) IncrementVersion(id string) error {
	return r.db.Model(&domain.Devotional{}).
		Where("id = ?", id).
		UpdateColumn("version", gorm.Expr("version + ?", 1)).Error
}

func (r *DevotionalRepository) Snapshot(item domain.ContentItem, actorID string) (*domain.ContentVersion, error) {
	d, ok := item.(*domain.Devotional)
	if !ok {
		return nil, fmt.Errorf("expected devotional, got %T", item)
	}
	return &domain.ContentVersion{
		ID:          uuid.New().String(),
		ContentType: domain.ContentTypeDevotional,
		ContentID:   d.ID,
		Version:     d.Version,
		Title:       d.Title,
		Body:        d.Body,
		Extra: map[string]any{
			"published_at": timeToExtra(d.PublishedAt),
			"scripture":    d.Scripture,
			"tags":         d.Tags,
			"featured":     d.Featured,
		},
		CreatedByID: actorID,
	}, nil
}

func (r *DevotionalRepository) ApplySnapshot(id string, v *domain.ContentVersion) error {
	d := domain.Devotional{
		Title:       v.Title,
		Body:        v.Body,
		PublishedAt: extraToTime(v.Extra["published_at"]),
		Scripture:   extraToString(v.Extra["scripture"], ""),
		Tags:        extraToStrings(v.Extra["tags"]),
		Featured:    extraToBool(v.Extra["featured"]),
	}
	return r.db.Model(&domain.Devotional{}).
		Where("id = ?", id).
		Select("title", "body", "published_at", "scripture", "tags", "featured").
		Updates(&d).Error
}

// Update writes the editable fields of a devotional
func (r *DevotionalRepository) Update(d *domain.Devotional) error {
	return r.db.Model(&domain.Devotional{}).
		Where("id = ?", d.ID).
		Select("title", "body", "published_at", "scripture", "tags", "featured").
		Updates(d).Error
}

func (r *DevotionalRepository) Delete(id string) error {
	return r.db.Delete(&domain.Devotional{}, "id = ?", id).Error
}

// ListPublished returns paginated published devotionals, featured first
func (r *DevotionalRepository) ListPublished(page, limit int) ([]*domain.Devotional, int64, error) {
	var items []*domain.Devotional
	var total int64

	q := r.db.Model(&domain.Devotional{}).Where("status = ?", domain.StatusPublished)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("featured DESC, published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByAuthor returns an author's devotionals in any status
func (r *DevotionalRepository) ListByAuthor(authorID string, page, limit int) ([]*domain.Devotional, int64, error) {
	var items []*domain.Devotional
	var total int64

	q := r.db.Model(&domain.Devotional{}).Where("author_id = ?", authorID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PublishDue promotes scheduled devotionals whose publish time has arrived.
// Devotionals have no expiry concept, so there is no archive counterpart.
func (r *DevotionalRepository) PublishDue(now time.Time) (int64, error) {
	res := r.db.Model(&domain.Devotional{}).
		Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", domain.StatusScheduled, now).
		Update("status", domain.StatusPublished)
	return res.RowsAffected, res.Error
}
