package migration

import (
	"fmt"

	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/pkg/logger"
	"gorm.io/gorm"
)

// Run applies schema migrations for all content tables
func Run(db *gorm.DB) error {
	logger.Info("running database migrations")

	if err := db.AutoMigrate(
		&domain.Announcement{},
		&domain.Devotional{},
		&domain.ContentVersion{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("database migrations complete")
	return nil
}
