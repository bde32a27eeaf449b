package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// PlanUpsert is the outcome of one plan write inside an UpsertPlans batch.
// Created means a new row was inserted; Merged means the requirement folded
// into the existing (recipe, harvest date) row. Neither set means the stored
// plan already accounted for every order the write referenced, so nothing
// changed.
type PlanUpsert struct {
	Plan    *domain.CropPlan
	Created bool
	Merged  bool
}

// Plan defines persistence operations for crop plans
type Plan interface {
	// UpsertPlans writes a batch of plan requirements in one transaction:
	// each plan is inserted, or its gram/tray requirement and order
	// references are folded into the existing row for the same (recipe,
	// harvest date). A plan whose orders are all already referenced by the
	// stored row is left untouched. A mid-batch failure rolls the whole
	// batch back.
	UpsertPlans(ctx context.Context, plans []*domain.CropPlan) ([]PlanUpsert, error)

	// GetPlan fetches one plan.
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.CropPlan, error)

	// ListPlans returns plans with harvest dates within [from, to].
	ListPlans(ctx context.Context, from, to time.Time) ([]domain.CropPlan, error)

	// ListOpenPlans returns plans not yet completed.
	ListOpenPlans(ctx context.Context) ([]domain.CropPlan, error)

	// UpdatePlanStatus moves a plan through its approval lifecycle.
	UpdatePlanStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error
}
