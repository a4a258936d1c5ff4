package database

import (
	"io/fs"
	"strings"
	"testing"

	"store-admin-service/migrations"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups, downs := 0, 0
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups++
		case strings.HasSuffix(n, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrationsParse(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)
}

func TestInitMigrationCreatesCatalogTables(t *testing.T) {
	b, err := fs.ReadFile(migrations.FS, "000001_init.up.sql")
	require.NoError(t, err)
	schema := string(b)

	for _, table := range []string{"stores", "billboards", "categories", "sizes", "colors", "products", "product_images"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, schema, "REFERENCES products (id) ON DELETE CASCADE")
}

func TestDownRejectsNonPositiveSteps(t *testing.T) {
	mg := &Migrator{}
	assert.Error(t, mg.Down(0))
}
