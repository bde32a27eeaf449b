package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tillerhq/farmops/internal/bootstrap"
	"github.com/tillerhq/farmops/internal/config"
	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/metrics"
	"github.com/tillerhq/farmops/internal/notify"
	"github.com/tillerhq/farmops/internal/recipe"
	"github.com/tillerhq/farmops/internal/scheduler"
	"github.com/tillerhq/farmops/internal/server"
	"github.com/tillerhq/farmops/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)
	slog.Info(bootstrap.LogMsgStartingFarmOps, "version", cfg.Version, "environment", cfg.Environment)

	dbPool, err := bootstrap.InitializeDatabase(cfg)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info(bootstrap.LogMsgDatabaseConnected, "host", cfg.DBHost, "database", cfg.DBName)

	bus := event.NewMemoryBus()
	metrics.RegisterEventHandlers(bus)

	repos := bootstrap.InitializeRepositories(dbPool)
	notifier := notify.NewLogNotifier()
	svcs := bootstrap.InitializeServices(cfg, repos, bus, notifier)

	// Seed the recipe catalog before the first derivation run
	if cfg.RecipeCatalogPath != "" {
		catalog, err := recipe.Load(cfg.RecipeCatalogPath)
		if err != nil {
			slog.Error("Recipe catalog load failed", "path", cfg.RecipeCatalogPath, "error", err)
			os.Exit(1)
		}
		seeded, err := recipe.Seed(context.Background(), repos.Recipe, catalog)
		if err != nil {
			slog.Error("Recipe catalog seed failed", "error", err)
			os.Exit(1)
		}
		slog.Info(bootstrap.LogMsgRecipesSeeded, "recipes", seeded)
	}

	// One worker per pipeline trigger keeps slow jobs from starving each other
	pool := worker.NewPool(4, 16)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.GenerateInterval, worker.NewJob(worker.JobNameBackfill, func(ctx context.Context) error {
		_, err := svcs.Generator.BackfillAll(ctx)
		return err
	}))
	sched.Schedule(cfg.DeriveInterval, worker.NewJob(worker.JobNameDerive, func(ctx context.Context) error {
		_, err := svcs.Deriver.DeriveAll(ctx)
		return err
	}))
	sched.Schedule(cfg.RescheduleInterval, worker.NewJob(worker.JobNameReschedule, func(ctx context.Context) error {
		_, err := svcs.StageTask.RescheduleAll(ctx)
		return err
	}))
	sched.Schedule(cfg.SweepInterval, worker.NewJob(worker.JobNameSweep, func(ctx context.Context) error {
		_, err := svcs.Monitor.Sweep(ctx)
		return err
	}))

	srv := server.NewServer(cfg.Port, cfg.APIKey, dbPool, server.Services{
		Generator: svcs.Generator,
		Deriver:   svcs.Deriver,
		StageTask: svcs.StageTask,
		Monitor:   svcs.Monitor,
		Orders:    repos.Order,
		Plans:     repos.Plan,
		Crops:     repos.Crop,
		Tasks:     repos.Task,
		Recipes:   repos.Recipe,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-quit:
		slog.Info("Signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: pool,
		DBPool:     dbPool,
	})
}
