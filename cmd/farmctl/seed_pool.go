package main

import (
	"github.com/tillerhq/farmops/internal/config"
	"github.com/tillerhq/farmops/internal/database"
	"github.com/tillerhq/farmops/internal/database/postgres"
	"github.com/tillerhq/farmops/internal/repository"
)

// seedPool bundles a short-lived connection pool with the recipe repository
type seedPool struct {
	close func()
	repo  repository.Recipe
}

func newSeedPool(cfg *config.Config) (*seedPool, error) {
	pool, err := database.NewPool(cfg.GetDBConnString())
	if err != nil {
		return nil, err
	}
	return &seedPool{
		close: pool.Close,
		repo:  postgres.NewRecipeRepository(pool),
	}, nil
}

func (p *seedPool) Close() { p.close() }
