package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// Crop defines persistence operations for tray/batch instances
type Crop interface {
	// CreateCrops inserts a batch of crops in one transaction.
	CreateCrops(ctx context.Context, crops []domain.Crop) error

	// GetCrop fetches one crop.
	GetCrop(ctx context.Context, id uuid.UUID) (*domain.Crop, error)

	// UpdateCropStage persists the crop's current stage and stage-entry
	// timestamps.
	UpdateCropStage(ctx context.Context, crop *domain.Crop) error

	// ListActiveCrops returns crops that have not reached harvest.
	ListActiveCrops(ctx context.Context) ([]domain.Crop, error)

	// ListCropsByPlan returns the crops realizing one plan.
	ListCropsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error)

	// ListCropsByOrder returns crops whose plan was derived solely from the
	// given order (used for cancellation propagation).
	ListCropsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Crop, error)

	// DeleteCrop removes a crop.
	DeleteCrop(ctx context.Context, id uuid.UUID) error
}
