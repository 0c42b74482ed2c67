package repository

import (
	"fmt"
	"time"

	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnouncementRepository data access for announcements
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Type() domain.ContentType {
	return domain.ContentTypeAnnouncement
}

func (r *AnnouncementRepository) Create(a *domain.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return r.db.Create(a).Error
}

// Get returns the announcement by id
func (r *AnnouncementRepository) Get(id string) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) FindByID(id string) (domain.ContentItem, error) {
	a, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnnouncementRepository) UpdateGuarded(id string, from []domain.ContentStatus, fields map[string]any) (int64, error) {
	q := r.db.Model(&domain.Announcement{}).Where("id = ?", id)
	if len(from) > 0 {
		q = q.Where("status IN ?", from)
	}
	res := q.Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *AnnouncementRepository) IncrementVersion(id string) error {
	return r.db.Model(&domain.Announcement{}).
		Where("id = ?", id).
		UpdateColumn("version", gorm.Expr("version + ?", 1)).Error
}

func (r *AnnouncementRepository) Snapshot(item domain.ContentItem, actorID string) (*domain.ContentVersion, error) {
	a, ok := item.(*domain.Announcement)
	if !ok {
		return nil, fmt.Errorf("expected announcement, got %T", item)
	}
	return &domain.ContentVersion{
		ID:          uuid.New().String(),
		ContentType: domain.ContentTypeAnnouncement,
		ContentID:   a.ID,
		Version:     a.Version,
		Title:       a.Title,
		Body:        a.Body,
		Extra: map[string]any{
			"published_at":  timeToExtra(a.PublishedAt),
			"start_date":    timeToExtra(a.StartDate),
			"end_date":      timeToExtra(a.EndDate),
			"priority":      string(a.Priority),
			"target_groups": a.TargetGroups,
		},
		CreatedByID: actorID,
	}, nil
}

func (r *AnnouncementRepository) ApplySnapshot(id string, v *domain.ContentVersion) error {
	a := domain.Announcement{
		Title:        v.Title,
		Body:         v.Body,
		PublishedAt:  extraToTime(v.Extra["published_at"]),
		StartDate:    extraToTime(v.Extra["start_date"]),
		EndDate:      extraToTime(v.Extra["end_date"]),
		Priority:     domain.Priority(extraToString(v.Extra["priority"], string(domain.PriorityNormal))),
		TargetGroups: extraToStrings(v.Extra["target_groups"]),
	}
	return r.db.Model(&domain.Announcement{}).
		Where("id = ?", id).
		Select("title", "body", "published_at", "start_date", "end_date", "priority", "target_groups").
		Updates(&a).Error
}

// Update writes the editable fields of an announcement
func (r *AnnouncementRepository) Update(a *domain.Announcement) error {
	return r.db.Model(&domain.Announcement{}).
		Where("id = ?", a.ID).
		Select("title", "body", "published_at", "start_date", "end_date", "priority", "target_groups").
		Updates(a).Error
}

func (r *AnnouncementRepository) Delete(id string) error {
	return r.db.Delete(&domain.Announcement{}, "id = ?", id).Error
}

// ListPublished returns paginated published announcements, most recent first
func (r *AnnouncementRepository) ListPublished(page, limit int) ([]*domain.Announcement, int64, error) {
	var items []*domain.Announcement
	var total int64

	q := r.db.Model(&domain.Announcement{}).Where("status = ?", domain.StatusPublished)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("priority = 'URGENT' DESC, published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByAuthor returns an author's announcements in any status
func (r *AnnouncementRepository) ListByAuthor(authorID string, page, limit int) ([]*domain.Announcement, int64, error) {
	var items []*domain.Announcement
	var total int64

	q := r.db.Model(&domain.Announcement{}).Where("author_id = ?", authorID)
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

// PublishDue promotes scheduled announcements whose publish time has
// arrived. The status predicate doubles as the concurrency guard: rows
// already promoted by an overlapping sweep no longer match.
func (r *AnnouncementRepository) PublishDue(now time.Time) (int64, error) {
	res := r.db.Model(&domain.Announcement{}).
		Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", domain.StatusScheduled, now).
		Update("status", domain.StatusPublished)
	return res.RowsAffected, res.Error
}

// ArchiveExpired demotes published announcements whose display window ended
func (r *AnnouncementRepository) ArchiveExpired(now time.Time) (int64, error) {
	res := r.db.Model(&domain.Announcement{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", domain.StatusPublished, now).
		Update("status", domain.StatusArchived)
	return res.RowsAffected, res.Error
}
