package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_Embebidas(t *testing.T) {
	expected := []string{
		"00001_enable_postgis.sql",
		"00002_create_products_table.sql",
		"00003_create_stock_movements_table.sql",
		"00004_create_stock_movement_items_table.sql",
		"00005_create_polygons_table.sql",
		"00006_limit_item_quantity.sql",
	}

	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimPrefix(f, migrationsDir+"/"))
	}
	assert.Equal(t, expected, names, "las migraciones deben ir numeradas y en orden")
}

func TestMigraciones_DirectivasGoose(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		b, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		content := string(b)

		for _, directive := range []string{"-- +goose Up", "-- +goose Down", "-- +goose StatementBegin", "-- +goose StatementEnd"} {
			assert.Contains(t, content, directive, "%s sin %q", f, directive)
		}
		assert.Less(t, strings.Index(content, "-- +goose Up"), strings.Index(content, "-- +goose Down"), f)
	}
}

func TestMigraciones_Restricciones(t *testing.T) {
	read := func(name string) string {
		b, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name)
		require.NoError(t, err)
		return string(b)
	}

	assert.Contains(t, read("00002_create_products_table.sql"), "CHECK (price > 0)")
	movements := read("00003_create_stock_movements_table.sql")
	assert.Contains(t, movements, "'entrada'")
	assert.Contains(t, movements, "'saída'")
	items := read("00004_create_stock_movement_items_table.sql")
	assert.Contains(t, items, "REFERENCES stock_movements")
	assert.Contains(t, items, "REFERENCES products")
	assert.Contains(t, items, "CHECK (quantity > 0)")
	assert.Contains(t, read("00005_create_polygons_table.sql"), "geometry(Geometry, 4326)")
	assert.Contains(t, read("00006_limit_item_quantity.sql"), "CHECK (quantity <= 1000000000)")
}
