package migrations_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/thedosaspot/dosaspot/app/models"
	_ "github.com/thedosaspot/dosaspot/database/migrations"
	"github.com/thedosaspot/dosaspot/pkg/database"
	"github.com/thedosaspot/dosaspot/pkg/migration"
)

func TestSchemaUpAndDown(t *testing.T) {
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	var out bytes.Buffer
	runner := migration.New(db, &out)
	require.NoError(t, runner.Run())

	for _, table := range []any{&models.Booking{}, &models.MenuCategory{}, &models.MenuItem{}, &models.Banner{}} {
		assert.True(t, db.Migrator().HasTable(table), "%T", table)
	}

	pending, err := runner.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, runner.Rollback())
	assert.False(t, db.Migrator().HasTable(&models.Booking{}))
	assert.False(t, db.Migrator().HasTable(&models.MenuItem{}))
}
