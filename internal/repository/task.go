package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// Task defines persistence operations for task schedules
type Task interface {
	// UpsertCropTask creates the crop's task schedule or overwrites its due
	// time and condition, keeping at most one active schedule per crop.
	UpsertCropTask(ctx context.Context, task *domain.TaskSchedule) error

	// GetActiveCropTask returns the crop's active schedule, if any.
	GetActiveCropTask(ctx context.Context, cropID uuid.UUID) (*domain.TaskSchedule, error)

	// ListActiveTasks returns every active schedule.
	ListActiveTasks(ctx context.Context) ([]domain.TaskSchedule, error)

	// ListTasksDueBy returns active schedules with next-run-at before by.
	ListTasksDueBy(ctx context.Context, by time.Time) ([]domain.TaskSchedule, error)

	// DeactivateCropTask deactivates the crop's schedule (crop deleted or
	// order cancelled).
	DeactivateCropTask(ctx context.Context, cropID uuid.UUID) error
}
