// Package testutil opens throwaway databases for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/database"
)

// TestDBOption customises MustOpenTestDB.
type TestDBOption func(*testDBConfig)

type testDBConfig struct {
	migrate bool
	seed    bool
	onDisk  bool
}

// WithAutoMigrate creates the schema.
func WithAutoMigrate() TestDBOption {
	return func(cfg *testDBConfig) { cfg.migrate = true }
}

// WithSeedData creates the schema and inserts the default categories and tags.
func WithSeedData() TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.migrate = true
		cfg.seed = true
	}
}

// WithFile backs the database with a file under t.TempDir instead of shared memory, for tests
// that exercise the WAL and busy-timeout settings of the server's default configuration.
func WithFile() TestDBOption {
	return func(cfg *testDBConfig) { cfg.onDisk = true }
}

// MustOpenTestDB opens a private SQLite database. Every call gets its own database; it is
// closed through t.Cleanup.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	var cfg testDBConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dbCfg := database.Config{Driver: "sqlite"}
	if cfg.onDisk {
		dbCfg.Path = filepath.Join(t.TempDir(), "codeshelf.sqlite")
	} else {
		dbCfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	}

	db, err := database.Open(dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	switch {
	case cfg.seed:
		require.NoError(t, database.AutoMigrateAndSeed(db))
	case cfg.migrate:
		require.NoError(t, database.AutoMigrate(db))
	}
	return db
}
