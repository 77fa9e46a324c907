// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/pkg/database"
)

// New returns a fresh database with every table created. Each call is
// isolated from the others.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repositories.NewStore(db).AutoMigrate())
	return db
}

// Store is New wrapped in a repositories.Store.
func Store(t testing.TB) *repositories.Store {
	t.Helper()
	return repositories.NewStore(New(t))
}
