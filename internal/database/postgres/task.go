package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/domain"
)

// TaskRepository implements the task schedule repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	task_id, resource_type, next_run_at, active, condition, created_at, updated_at
`

func scanTask(row pgx.Row) (*domain.TaskSchedule, error) {
	var t domain.TaskSchedule
	var condition []byte

	err := row.Scan(
		&t.ID, &t.ResourceType, &t.NextRunAt, &t.Active, &condition,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(condition, &t.Condition); err != nil {
		return nil, fmt.Errorf("failed to decode task condition: %w", err)
	}
	return &t, nil
}

// UpsertCropTask creates or overwrites the crop's single active schedule.
// The partial unique index on (crop_id) WHERE active backs the invariant.
func (r *TaskRepository) UpsertCropTask(ctx context.Context, task *domain.TaskSchedule) error {
	cropID, ok := task.CropID()
	if !ok {
		return fmt.Errorf("task condition does not reference a crop")
	}

	condition, err := json.Marshal(task.Condition)
	if err != nil {
		return fmt.Errorf("failed to encode task condition: %w", err)
	}

	query := `
		INSERT INTO task_schedules (task_id, resource_type, crop_id, next_run_at, active, condition)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (crop_id) WHERE crop_id IS NOT NULL AND active DO UPDATE SET
			next_run_at = EXCLUDED.next_run_at,
			condition = EXCLUDED.condition,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query, task.ID, task.ResourceType, cropID, task.NextRunAt, condition)
	if err != nil {
		return fmt.Errorf("failed to upsert task schedule: %w", err)
	}
	return nil
}

// GetActiveCropTask returns the crop's active schedule, if any
func (r *TaskRepository) GetActiveCropTask(ctx context.Context, cropID uuid.UUID) (*domain.TaskSchedule, error) {
	query := `SELECT ` + taskColumns + `
		FROM task_schedules WHERE crop_id = $1 AND active = TRUE`

	task, err := scanTask(r.db.QueryRow(ctx, query, cropID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: crop %s", domain.ErrTaskNotFound, cropID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task schedule: %w", err)
	}
	return task, nil
}

// ListActiveTasks returns every active schedule
func (r *TaskRepository) ListActiveTasks(ctx context.Context) ([]domain.TaskSchedule, error) {
	query := `SELECT ` + taskColumns + `
		FROM task_schedules WHERE active = TRUE ORDER BY next_run_at`
	return r.queryTasks(ctx, query)
}

// ListTasksDueBy returns active schedules due before by
func (r *TaskRepository) ListTasksDueBy(ctx context.Context, by time.Time) ([]domain.TaskSchedule, error) {
	query := `SELECT ` + taskColumns + `
		FROM task_schedules WHERE active = TRUE AND next_run_at <= $1 ORDER BY next_run_at`
	return r.queryTasks(ctx, query, by)
}

// DeactivateCropTask deactivates the crop's schedule
func (r *TaskRepository) DeactivateCropTask(ctx context.Context, cropID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE task_schedules SET active = FALSE, updated_at = NOW()
		WHERE crop_id = $1 AND active = TRUE`,
		cropID)
	if err != nil {
		return fmt.Errorf("failed to deactivate task schedule: %w", err)
	}
	return nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.TaskSchedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query task schedules: %w", err)
	}
	defer rows.Close()

	var tasks []domain.TaskSchedule
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task schedule: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tasks, nil
}
