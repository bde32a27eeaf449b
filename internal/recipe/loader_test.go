package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
recipes:
  - name: sunflower
    product: sunflower shoots
    soak_hours: 12
    germination_days: 2
    blackout_days: 3
    light_days: 5
    yield_grams_per_tray: 350
  - name: arugula
    product: arugula microgreens
    germination_days: 2
    light_days: 6
    yield_grams_per_tray: 180
`)

	catalog, err := Load(path)
	require.NoError(t, err)
	require.Len(t, catalog.Recipes, 2)

	assert.Equal(t, "sunflower", catalog.Recipes[0].Name)
	assert.Equal(t, 12, catalog.Recipes[0].SoakHours)
	assert.Equal(t, 350.0, catalog.Recipes[0].YieldGramsPerTray)

	// arugula skips soaking and blackout entirely
	assert.Equal(t, 0, catalog.Recipes[1].SoakHours)
	assert.Equal(t, 0, catalog.Recipes[1].BlackoutDays)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
recipes:
  - product: mystery greens
    germination_days: 2
    light_days: 5
    yield_grams_per_tray: 100
`,
			wantErr: "has no name",
		},
		{
			name: "missing product",
			content: `
recipes:
  - name: kale
    germination_days: 2
    light_days: 5
    yield_grams_per_tray: 100
`,
			wantErr: "has no product",
		},
		{
			name: "zero yield",
			content: `
recipes:
  - name: kale
    product: kale microgreens
    germination_days: 2
    light_days: 5
`,
			wantErr: "positive yield",
		},
		{
			name:    "malformed yaml",
			content: "recipes: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
