package bootstrap

import (
	"context"
	"log/slog"

	"github.com/tillerhq/farmops/internal/database"
	"github.com/tillerhq/farmops/internal/scheduler"
	"github.com/tillerhq/farmops/internal/server"
	"github.com/tillerhq/farmops/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	DBPool     database.Pool
}

// GracefulShutdown stops components in order: the HTTP server first so no new
// work arrives, then the scheduler and worker pool so in-flight jobs finish,
// then the database pool.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
		slog.Info(LogMsgSchedulerStopped)
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
