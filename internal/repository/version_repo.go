package repository

import (
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VersionRepository append-only access to content version snapshots
type VersionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

func (r *VersionRepository) Create(v *domain.ContentVersion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return r.db.Create(v).Error
}

func (r *VersionRepository) FindByID(id string) (*domain.ContentVersion, error) {
	var v domain.ContentVersion
	if err := r.db.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByContent returns all snapshots for a content item, newest version first
func (r *VersionRepository) ListByContent(ct domain.ContentType, contentID string) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("content_type = ? AND content_id = ?", ct, contentID).
		Order("version DESC").
		Find(&versions).Error
	return versions, err
}

func (r *VersionRepository) CountByContent(ct domain.ContentType, contentID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ContentVersion{}).
		Where("content_type = ? AND content_id = ?", ct, contentID).
		Count(&count).Error
	return count, err
}

// DeleteByContent removes all snapshots of a content item. Called only as
// a cascade of content deletion.
func (r *VersionRepository) DeleteByContent(ct domain.ContentType, contentID string) error {
	return r.db.Where("content_type = ? AND content_id = ?", ct, contentID).
		Delete(&domain.ContentVersion{}).Error
}
