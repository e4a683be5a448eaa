// Package migration applies the database schema. MySQL uses versioned goose
// scripts embedded in the binary; sqlite, used for local runs and tests, is
// migrated from the gorm models.
package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(ctx context.Context, db *gorm.DB) error
	GetName() string
}

// NewStrategy picks the strategy for a database driver.
func NewStrategy(driver string, log logger.Interface) Strategy {
	if driver == "sqlite" {
		return NewGormAutoMigrateStrategy(log)
	}
	return NewGooseStrategy(DefaultScriptsDir, log)
}

// GormAutoMigrateStrategy creates and alters tables from the gorm models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))

	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
