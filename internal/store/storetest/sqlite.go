// Package storetest opens throwaway catalog databases for tests in other packages.
package storetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-catalog-ingest/internal/store"
	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

// NewSQLite opens a migrated in-memory SQLite database that is closed when the test ends
func NewSQLite(t testing.TB) (store.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&schema.Product{},
		&schema.ProviderSource{},
		&schema.Performer{},
		&schema.ProductPerformer{},
		&schema.PriceHistory{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return store.NewPGStore(db), db
}
