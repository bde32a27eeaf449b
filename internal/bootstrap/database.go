package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/config"
	"github.com/tillerhq/farmops/internal/database"
)

// InitializeDatabase opens and verifies the connection pool
func InitializeDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	return database.NewPool(cfg.GetDBConnString())
}
