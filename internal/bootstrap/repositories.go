package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/database/postgres"
	"github.com/tillerhq/farmops/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Order  repository.Order
	Plan   repository.Plan
	Crop   repository.Crop
	Task   repository.Task
	Recipe repository.Recipe
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Order:  postgres.NewOrderRepository(dbPool),
		Plan:   postgres.NewPlanRepository(dbPool),
		Crop:   postgres.NewCropRepository(dbPool),
		Task:   postgres.NewTaskRepository(dbPool),
		Recipe: postgres.NewRecipeRepository(dbPool),
	}
}
