package repository

import (
	"fmt"
	"time"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle so services can
// run multi-table operations inside a single transaction.
type Store struct {
	db            *gorm.DB
	Announcements *AnnouncementRepository
	Devotionals   *DevotionalRepository
	Versions      *VersionRepository
}

// NewStore creates a Store over the given database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Announcements: NewAnnouncementRepository(db),
		Devotionals:   NewDevotionalRepository(db),
		Versions:      NewVersionRepository(db),
	}
}

// Content dispatches to the repository for the given content type
func (s *Store) Content(ct domain.ContentType) (ContentRepository, error) {
	switch ct {
	case domain.ContentTypeAnnouncement:
		return s.Announcements, nil
	case domain.ContentTypeDevotional:
		return s.Devotionals, nil
	default:
		return nil, fmt.Errorf("%w: unknown content type %q", common.ErrInvalidInput, ct)
	}
}

// Transaction runs fn against a transactional copy of the store;
// returning an error rolls everything back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Sweep operations, delegated so the scheduler can depend on one small
// interface.

func (s *Store) PublishDueAnnouncements(now time.Time) (int64, error) {
	return s.Announcements.PublishDue(now)
}

func (s *Store) PublishDueDevotionals(now time.Time) (int64, error) {
	return s.Devotionals.PublishDue(now)
}

func (s *Store) ArchiveExpiredAnnouncements(now time.Time) (int64, error) {
	return s.Announcements.ArchiveExpired(now)
}
