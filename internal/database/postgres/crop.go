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

// CropRepository implements the crop repository for PostgreSQL
type CropRepository struct {
	db *pgxpool.Pool
}

// NewCropRepository creates a new CropRepository
func NewCropRepository(db *pgxpool.Pool) *CropRepository {
	return &CropRepository{db: db}
}

const cropColumns = `
	crop_id, plan_id, recipe_id, tray_number, current_stage,
	stage_entered_at, created_at, updated_at
`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var c domain.Crop
	var stageEnteredAt []byte

	err := row.Scan(
		&c.ID, &c.PlanID, &c.RecipeID, &c.TrayNumber, &c.CurrentStage,
		&stageEnteredAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.StageEnteredAt = make(map[domain.CropStage]time.Time)
	if len(stageEnteredAt) > 0 {
		if err := json.Unmarshal(stageEnteredAt, &c.StageEnteredAt); err != nil {
			return nil, fmt.Errorf("failed to decode stage timestamps: %w", err)
		}
	}
	return &c, nil
}

// CreateCrops inserts a batch of crops in one transaction
func (r *CropRepository) CreateCrops(ctx context.Context, crops []domain.Crop) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for i := range crops {
		c := &crops[i]
		stageEnteredAt, err := json.Marshal(c.StageEnteredAt)
		if err != nil {
			return fmt.Errorf("failed to encode stage timestamps: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO crops (crop_id, plan_id, recipe_id, tray_number, current_stage, stage_entered_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.PlanID, c.RecipeID, c.TrayNumber, c.CurrentStage, stageEnteredAt)
		if err != nil {
			return fmt.Errorf("failed to insert crop: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetCrop retrieves one crop
func (r *CropRepository) GetCrop(ctx context.Context, id uuid.UUID) (*domain.Crop, error) {
	query := `SELECT ` + cropColumns + ` FROM crops WHERE crop_id = $1`

	crop, err := scanCrop(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCropNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crop: %w", err)
	}
	return crop, nil
}

// UpdateCropStage persists the crop's stage and stage-entry timestamps
func (r *CropRepository) UpdateCropStage(ctx context.Context, crop *domain.Crop) error {
	stageEnteredAt, err := json.Marshal(crop.StageEnteredAt)
	if err != nil {
		return fmt.Errorf("failed to encode stage timestamps: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE crops
		SET current_stage = $2, stage_entered_at = $3, updated_at = NOW()
		WHERE crop_id = $1`,
		crop.ID, crop.CurrentStage, stageEnteredAt)
	if err != nil {
		return fmt.Errorf("failed to update crop stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCropNotFound, crop.ID)
	}
	return nil
}

// ListActiveCrops returns crops that have not reached harvest
func (r *CropRepository) ListActiveCrops(ctx context.Context) ([]domain.Crop, error) {
	query := `SELECT ` + cropColumns + `
		FROM crops WHERE current_stage != 'harvested' ORDER BY created_at`
	return r.queryCrops(ctx, query)
}

// ListCropsByPlan returns the crops realizing one plan
func (r *CropRepository) ListCropsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error) {
	query := `SELECT ` + cropColumns + `
		FROM crops WHERE plan_id = $1 ORDER BY tray_number`
	return r.queryCrops(ctx, query, planID)
}

// ListCropsByOrder returns crops whose plan was derived solely from the order
func (r *CropRepository) ListCropsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Crop, error) {
	query := `SELECT ` + cropColumns + `
		FROM crops c
		JOIN crop_plans p ON p.plan_id = c.plan_id
		WHERE p.order_ids = ARRAY[$1]::uuid[]
		ORDER BY c.created_at`
	return r.queryCrops(ctx, query, orderID)
}

// DeleteCrop removes a crop
func (r *CropRepository) DeleteCrop(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM crops WHERE crop_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete crop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCropNotFound, id)
	}
	return nil
}

func (r *CropRepository) queryCrops(ctx context.Context, query string, args ...any) ([]domain.Crop, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crop: %w", err)
		}
		crops = append(crops, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return crops, nil
}
