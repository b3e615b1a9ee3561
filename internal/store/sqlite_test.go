package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-catalog-ingest/internal/store/schema"
)

// initSQLiteTestDB opens a fresh in-memory database per test
func initSQLiteTestDB(t *testing.T) Store {
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

	return NewPGStore(db)
}

func cleanupSQLiteTestDB(t *testing.T) {
	// the in-memory database is dropped when its connection closes
}

// TestSQLiteStore runs all store tests against an in-memory SQLite database
func TestSQLiteStore(t *testing.T) {
	RunStoreTests(t, initSQLiteTestDB, cleanupSQLiteTestDB)
}

func TestSQLiteStore_ConcurrentWrites(t *testing.T) {
	testConcurrentWrites(t, initSQLiteTestDB(t), "RACE-001", "競争 太郎")
}
