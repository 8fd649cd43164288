package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/codeshelf/internal/models"
)

func TestAutoMigrateCreatesSnippetTables(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, AutoMigrate(db))

	migrator := db.Migrator()
	for _, table := range []any{&models.Category{}, &models.Tag{}, &models.Snippet{}} {
		require.True(t, migrator.HasTable(table), "expected table for %T to exist", table)
	}
	require.True(t, migrator.HasTable("snippet_tags"), "expected join table to exist")
	require.True(t, migrator.HasColumn(&models.Snippet{}, "category_id"))
}

func TestTagNamesAreUnique(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.Tag{Name: "Go"}).Error)
	require.Error(t, db.Create(&models.Tag{Name: "Go"}).Error)
}
