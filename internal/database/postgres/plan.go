package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/repository"
)

// PlanRepository implements the crop plan repository for PostgreSQL
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `
	p.plan_id, p.recipe_id, r.name, p.harvest_date, p.grams_needed,
	p.trays_needed, p.plant_by_date, p.status, p.order_ids::text[],
	p.created_at, p.updated_at
`

func scanPlan(row pgx.Row) (*domain.CropPlan, error) {
	var p domain.CropPlan
	var orderIDs []string

	err := row.Scan(
		&p.ID, &p.RecipeID, &p.RecipeName, &p.HarvestDate, &p.GramsNeeded,
		&p.TraysNeeded, &p.PlantByDate, &p.Status, &orderIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.OrderIDs, err = stringsToUUIDs(orderIDs); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPlans writes a derivation batch in one transaction. Each plan is
// inserted or folded into the existing (recipe, harvest date) row; the
// containment guard on order_ids makes re-deriving an already-planned order
// a no-op instead of doubling its demand. A mid-batch failure rolls the
// whole batch back.
func (r *PlanRepository) UpsertPlans(ctx context.Context, plans []*domain.CropPlan) ([]repository.PlanUpsert, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	results := make([]repository.PlanUpsert, 0, len(plans))
	for _, plan := range plans {
		result, err := upsertPlanTx(ctx, tx, plan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit plan batch: %w", err)
	}
	return results, nil
}

func upsertPlanTx(ctx context.Context, tx pgx.Tx, plan *domain.CropPlan) (repository.PlanUpsert, error) {
	query := `
		INSERT INTO crop_plans (
			plan_id, recipe_id, harvest_date, grams_needed, trays_needed,
			plant_by_date, status, order_ids
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid[])
		ON CONFLICT (recipe_id, harvest_date) DO UPDATE SET
			grams_needed = crop_plans.grams_needed + EXCLUDED.grams_needed,
			trays_needed = crop_plans.trays_needed + EXCLUDED.trays_needed,
			order_ids = (
				SELECT ARRAY(
					SELECT DISTINCT unnest(crop_plans.order_ids || EXCLUDED.order_ids)
				)
			),
			updated_at = NOW()
		WHERE NOT crop_plans.order_ids @> EXCLUDED.order_ids
		RETURNING plan_id, (xmax = 0) AS inserted`

	var id uuid.UUID
	var inserted bool
	err := tx.QueryRow(ctx, query,
		plan.ID, plan.RecipeID, plan.HarvestDate, plan.GramsNeeded, plan.TraysNeeded,
		plan.PlantByDate, plan.Status, uuidsToStrings(plan.OrderIDs),
	).Scan(&id, &inserted)

	// The DO UPDATE guard returned no row: every order in this write is
	// already referenced by the stored plan.
	if errors.Is(err, pgx.ErrNoRows) {
		stored, err := getPlanTx(ctx, tx, `
			SELECT `+planColumns+`
			FROM crop_plans p JOIN recipes r ON r.recipe_id = p.recipe_id
			WHERE p.recipe_id = $1 AND p.harvest_date = $2`,
			plan.RecipeID, plan.HarvestDate)
		if err != nil {
			return repository.PlanUpsert{}, err
		}
		return repository.PlanUpsert{Plan: stored}, nil
	}
	if err != nil {
		return repository.PlanUpsert{}, fmt.Errorf("failed to upsert plan: %w", err)
	}

	stored, err := getPlanTx(ctx, tx, `
		SELECT `+planColumns+`
		FROM crop_plans p JOIN recipes r ON r.recipe_id = p.recipe_id
		WHERE p.plan_id = $1`, id)
	if err != nil {
		return repository.PlanUpsert{}, err
	}
	return repository.PlanUpsert{Plan: stored, Created: inserted, Merged: !inserted}, nil
}

func getPlanTx(ctx context.Context, tx pgx.Tx, query string, args ...any) (*domain.CropPlan, error) {
	plan, err := scanPlan(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to read back plan: %w", err)
	}
	return plan, nil
}

// GetPlan retrieves one plan
func (r *PlanRepository) GetPlan(ctx context.Context, id uuid.UUID) (*domain.CropPlan, error) {
	query := `SELECT ` + planColumns + `
		FROM crop_plans p JOIN recipes r ON r.recipe_id = p.recipe_id
		WHERE p.plan_id = $1`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

// ListPlans returns plans with harvest dates within [from, to]
func (r *PlanRepository) ListPlans(ctx context.Context, from, to time.Time) ([]domain.CropPlan, error) {
	query := `SELECT ` + planColumns + `
		FROM crop_plans p JOIN recipes r ON r.recipe_id = p.recipe_id
		WHERE p.harvest_date BETWEEN $1 AND $2
		ORDER BY p.harvest_date`

	return r.queryPlans(ctx, query, from, to)
}

// ListOpenPlans returns plans not yet completed
func (r *PlanRepository) ListOpenPlans(ctx context.Context) ([]domain.CropPlan, error) {
	query := `SELECT ` + planColumns + `
		FROM crop_plans p JOIN recipes r ON r.recipe_id = p.recipe_id
		WHERE p.status != 'completed'
		ORDER BY p.plant_by_date`

	return r.queryPlans(ctx, query)
}

// UpdatePlanStatus moves a plan through its approval lifecycle
func (r *PlanRepository) UpdatePlanStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE crop_plans SET status = $2, updated_at = NOW() WHERE plan_id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
	}
	return nil
}

func (r *PlanRepository) queryPlans(ctx context.Context, query string, args ...any) ([]domain.CropPlan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.CropPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return plans, nil
}
