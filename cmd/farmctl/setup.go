package main

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/tillerhq/farmops/internal/config"
	"github.com/tillerhq/farmops/internal/database/schema"
	"github.com/tillerhq/farmops/internal/recipe"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database and apply the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// Connect to the default database to create the target one
			adminConn := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
			conn, err := pgx.Connect(ctx, adminConn)
			if err != nil {
				return fmt.Errorf("unable to connect to postgres database: %w", err)
			}

			var exists bool
			err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
			if err != nil {
				conn.Close(ctx)
				return fmt.Errorf("failed to check if database exists: %w", err)
			}
			if !exists {
				fmt.Printf("Creating database %s...\n", cfg.DBName)
				if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)); err != nil {
					conn.Close(ctx)
					return fmt.Errorf("failed to create database: %w", err)
				}
			} else {
				fmt.Printf("Database %s already exists.\n", cfg.DBName)
			}
			conn.Close(ctx)

			target, err := pgx.Connect(ctx, cfg.GetDBConnString())
			if err != nil {
				return fmt.Errorf("unable to connect to %s: %w", cfg.DBName, err)
			}
			defer target.Close(ctx)

			if _, err := target.Exec(ctx, schema.SchemaSQL); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
			fmt.Println("Schema applied.")
			return nil
		},
	}
}

func seedRecipesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-recipes",
		Short: "Load the recipe catalog YAML into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.RecipeCatalogPath
			}
			if file == "" {
				return fmt.Errorf("no catalog file: pass --file or set RECIPE_CATALOG_PATH")
			}

			catalog, err := recipe.Load(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := newSeedPool(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			seeded, err := recipe.Seed(ctx, pool.repo, catalog)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d recipes from %s\n", seeded, file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog file (YAML)")
	return cmd
}
