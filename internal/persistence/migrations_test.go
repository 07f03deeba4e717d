package persistence

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/migrations"
)

func TestMigrationFilesAreSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_seed.sql": {Data: []byte("SELECT 2")},
		"0001_init.sql": {Data: []byte("SELECT 1")},
		"README.md":     {Data: []byte("docs")},
	}
	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_seed.sql"}, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := migrationFiles(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_seed_items.sql"}, names)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, migrations.FS, zap.NewNop()))
}
