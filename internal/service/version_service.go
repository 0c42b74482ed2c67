package service

import (
	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/agapechurch/chms-backend/pkg/logger"
)

// VersionService is the only writer of content_versions and the only way
// the live version counter advances.
type VersionService interface {
	// Snapshot copies the live item into history tagged with its current
	// version, then bumps the live version. Returns the new live version.
	Snapshot(actor domain.Actor, ct domain.ContentType, id string) (int, error)

	// Restore overwrites the live item's versioned fields with a historical
	// snapshot, preserving the live status. A backup snapshot of the
	// pre-restore state is taken first, so no restore is destructive.
	Restore(actor domain.Actor, ct domain.ContentType, id, versionID string) (domain.ContentItem, error)

	// History returns all snapshots of a content item, newest version first.
	History(ct domain.ContentType, id string) ([]*domain.ContentVersion, error)
}

type versionService struct {
	store *repository.Store
}

// NewVersionService creates a new VersionService
func NewVersionService(store *repository.Store) VersionService {
	return &versionService{store: store}
}

func (s *versionService) Snapshot(actor domain.Actor, ct domain.ContentType, id string) (int, error) {
	var newVersion int
	err := s.store.Transaction(func(tx *repository.Store) error {
		repo, err := tx.Content(ct)
		if err != nil {
			return err
		}
		item, err := repo.FindByID(id)
		if err != nil {
			return mapNotFound(err)
		}

		rec, err := repo.Snapshot(item, actor.ID)
		if err != nil {
			return err
		}
		if err := tx.Versions.Create(rec); err != nil {
			return err
		}
		if err := repo.IncrementVersion(id); err != nil {
			return err
		}

		newVersion = item.GetVersion() + 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("version: %s %s snapshot v%d by %s", ct, id, newVersion-1, actor.ID)
	return newVersion, nil
}

func (s *versionService) Restore(actor domain.Actor, ct domain.ContentType, id, versionID string) (domain.ContentItem, error) {
	err := s.store.Transaction(func(tx *repository.Store) error {
		repo, err := tx.Content(ct)
		if err != nil {
			return err
		}
		item, err := repo.FindByID(id)
		if err != nil {
			return mapNotFound(err)
		}

		rec, err := tx.Versions.FindByID(versionID)
		if err != nil {
			return mapNotFound(err)
		}
		if rec.ContentType != ct || rec.ContentID != id {
			return common.ErrInvalidReference
		}

		// Safety backup of the pre-restore state; this is what advances
		// the version counter, so the restore itself stays recoverable.
		backup, err := repo.Snapshot(item, actor.ID)
		if err != nil {
			return err
		}
		if err := tx.Versions.Create(backup); err != nil {
			return err
		}
		if err := repo.IncrementVersion(id); err != nil {
			return err
		}

		return repo.ApplySnapshot(id, rec)
	})
	if err != nil {
		return nil, err
	}

	repo, err := s.store.Content(ct)
	if err != nil {
		return nil, err
	}
	logger.Info("version: %s %s restored from %s by %s", ct, id, versionID, actor.ID)
	return repo.FindByID(id)
}

func (s *versionService) History(ct domain.ContentType, id string) ([]*domain.ContentVersion, error) {
	if _, err := s.store.Content(ct); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, common.ErrInvalidInput
	}
	return s.store.Versions.ListByContent(ct, id)
}
