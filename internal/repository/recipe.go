package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// Recipe defines persistence operations for grow recipes
type Recipe interface {
	// GetRecipe fetches one recipe.
	GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)

	// GetRecipeByProduct resolves the recipe growing a product, or
	// domain.ErrRecipeNotFound.
	GetRecipeByProduct(ctx context.Context, product string) (*domain.Recipe, error)

	// ListRecipes returns the whole catalog.
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)

	// UpsertRecipe inserts or updates a recipe by name.
	UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error
}
