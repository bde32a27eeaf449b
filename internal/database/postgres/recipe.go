package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/domain"
)

// RecipeRepository implements the recipe repository for PostgreSQL
type RecipeRepository struct {
	db *pgxpool.Pool
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `
	recipe_id, name, product, soak_hours, germination_days, blackout_days,
	light_days, yield_grams_per_tray, created_at, updated_at
`

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var r domain.Recipe
	err := row.Scan(
		&r.ID, &r.Name, &r.Product, &r.SoakHours, &r.GerminationDays,
		&r.BlackoutDays, &r.LightDays, &r.YieldGramsPerTray,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipe retrieves one recipe
func (r *RecipeRepository) GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE recipe_id = $1`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipeByProduct resolves the recipe growing a product
func (r *RecipeRepository) GetRecipeByProduct(ctx context.Context, product string) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE product = $1`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, product))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, product)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// ListRecipes returns the whole catalog
func (r *RecipeRepository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return recipes, nil
}

// UpsertRecipe inserts or updates a recipe by name
func (r *RecipeRepository) UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (recipe_id, name, product, soak_hours, germination_days,
			blackout_days, light_days, yield_grams_per_tray)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			product = EXCLUDED.product,
			soak_hours = EXCLUDED.soak_hours,
			germination_days = EXCLUDED.germination_days,
			blackout_days = EXCLUDED.blackout_days,
			light_days = EXCLUDED.light_days,
			yield_grams_per_tray = EXCLUDED.yield_grams_per_tray,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query,
		recipe.ID, recipe.Name, recipe.Product, recipe.SoakHours, recipe.GerminationDays,
		recipe.BlackoutDays, recipe.LightDays, recipe.YieldGramsPerTray)
	if err != nil {
		return fmt.Errorf("failed to upsert recipe: %w", err)
	}
	return nil
}
