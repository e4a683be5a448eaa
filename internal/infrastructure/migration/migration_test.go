package migration

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

func TestNewStrategy(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewStrategy("sqlite", logger.NewNopLogger()).GetName())
	assert.Equal(t, "goose", NewStrategy("mysql", logger.NewNopLogger()).GetName())
}

func TestGormAutoMigrateStrategy_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	require.NoError(t, NewGormAutoMigrateStrategy(logger.NewNopLogger()).Migrate(context.Background(), db))
	// Running twice is a no-op.
	require.NoError(t, NewGormAutoMigrateStrategy(logger.NewNopLogger()).Migrate(context.Background(), db))

	for _, table := range []string{
		constants.TableBusinesses,
		constants.TablePricingRecords,
		constants.TableFreeUnlocks,
		constants.TablePurchases,
		constants.TableSubscriptions,
		constants.TablePaymentFailures,
		constants.TableCheckoutSessions,
		constants.TableOutboxMessages,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedScripts_CoverEveryTable(t *testing.T) {
	entries, err := fs.ReadDir(embeddedScripts, embeddedDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var all strings.Builder
	for _, e := range entries {
		content, err := fs.ReadFile(embeddedScripts, embeddedDir+"/"+e.Name())
		require.NoError(t, err)
		text := string(content)
		assert.Contains(t, text, "-- +goose Up", e.Name())
		assert.Contains(t, text, "-- +goose Down", e.Name())
		all.WriteString(text)
	}

	for _, table := range []string{
		constants.TableBusinesses,
		constants.TablePricingRecords,
		constants.TableFreeUnlocks,
		constants.TablePurchases,
		constants.TableSubscriptions,
		constants.TablePaymentFailures,
		constants.TableCheckoutSessions,
		constants.TableOutboxMessages,
	} {
		assert.Contains(t, all.String(), "CREATE TABLE "+table+" (", table)
	}
}
