// Package recipe loads the grow-recipe catalog from its YAML file and seeds
// it into the store. The catalog is the source of truth operators edit; the
// database copy is what the pipeline reads.
package recipe

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/repository"
)

// Catalog is the YAML document shape
type Catalog struct {
	Recipes []Entry `yaml:"recipes"`
}

// Entry is one recipe in the catalog file
type Entry struct {
	Name              string  `yaml:"name"`
	Product           string  `yaml:"product"`
	SoakHours         int     `yaml:"soak_hours"`
	GerminationDays   int     `yaml:"germination_days"`
	BlackoutDays      int     `yaml:"blackout_days"`
	LightDays         int     `yaml:"light_days"`
	YieldGramsPerTray float64 `yaml:"yield_grams_per_tray"`
}

// Load parses a catalog file and validates its entries
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse recipe catalog: %w", err)
	}

	for i, e := range catalog.Recipes {
		if e.Name == "" {
			return nil, fmt.Errorf("recipe %d has no name", i)
		}
		if e.Product == "" {
			return nil, fmt.Errorf("recipe %q has no product", e.Name)
		}
		if e.GerminationDays <= 0 || e.LightDays <= 0 {
			return nil, fmt.Errorf("recipe %q needs germination and light durations", e.Name)
		}
		if e.YieldGramsPerTray <= 0 {
			return nil, fmt.Errorf("recipe %q needs a positive yield", e.Name)
		}
	}
	return &catalog, nil
}

// Seed upserts every catalog entry into the store, keyed by recipe name
func Seed(ctx context.Context, repo repository.Recipe, catalog *Catalog) (int, error) {
	log := logger.FromContext(ctx)

	for _, e := range catalog.Recipes {
		r := &domain.Recipe{
			ID:                uuid.New(),
			Name:              e.Name,
			Product:           e.Product,
			SoakHours:         e.SoakHours,
			GerminationDays:   e.GerminationDays,
			BlackoutDays:      e.BlackoutDays,
			LightDays:         e.LightDays,
			YieldGramsPerTray: e.YieldGramsPerTray,
		}
		if err := repo.UpsertRecipe(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to seed recipe %q: %w", e.Name, err)
		}
	}

	log.Info("recipe catalog seeded", "recipes", len(catalog.Recipes))
	return len(catalog.Recipes), nil
}
