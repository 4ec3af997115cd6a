package database_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"procurement-service/internal/infra/database"
	"procurement-service/internal/infra/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func appliedVersions(t *testing.T, db *gorm.DB) []int {
	t.Helper()
	var versions []int
	require.NoError(t, db.Table("schema_migrations").Order("version").Pluck("version", &versions).Error)
	return versions
}

func TestMigrate_AppliesEveryStepOnce(t *testing.T) {
	db := databasetest.Open(t)

	assert.Equal(t, []int{1, 2}, appliedVersions(t, db))
	for _, table := range []string{"users", "products", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// A second run finds nothing to do.
	require.NoError(t, database.Migrate(context.Background(), db, quietLogger(), database.Migrations))
	assert.Equal(t, []int{1, 2}, appliedVersions(t, db))
}

func TestMigrate_NewStepIsApplied(t *testing.T) {
	db := databasetest.Open(t)

	ran := 0
	ms := append(append([]database.Migration{}, database.Migrations...), database.Migration{
		Version: 3,
		Name:    "noop",
		Up: func(tx *gorm.DB) error {
			ran++
			return nil
		},
	})

	require.NoError(t, database.Migrate(context.Background(), db, quietLogger(), ms))
	require.NoError(t, database.Migrate(context.Background(), db, quietLogger(), ms))

	assert.Equal(t, 1, ran)
	assert.Equal(t, []int{1, 2, 3}, appliedVersions(t, db))
}

func TestMigrate_FailedStepIsNotRecorded(t *testing.T) {
	db := databasetest.Open(t)

	ms := append(append([]database.Migration{}, database.Migrations...), database.Migration{
		Version: 3,
		Name:    "broken",
		Up: func(tx *gorm.DB) error {
			return tx.Exec("ALTER TABLE missing_table ADD COLUMN x INTEGER").Error
		},
	})

	err := database.Migrate(context.Background(), db, quietLogger(), ms)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 3 (broken)")
	assert.Equal(t, []int{1, 2}, appliedVersions(t, db))
}

func TestMigrate_RejectsOutOfOrderVersions(t *testing.T) {
	db := databasetest.Open(t)

	ms := []database.Migration{
		{Version: 2, Name: "b", Up: func(*gorm.DB) error { return nil }},
		{Version: 1, Name: "a", Up: func(*gorm.DB) error { return nil }},
	}

	err := database.Migrate(context.Background(), db, quietLogger(), ms)
	assert.ErrorContains(t, err, "out of order")
}
