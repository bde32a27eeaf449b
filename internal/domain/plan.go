package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PlanStatus is the approval lifecycle of a crop plan
type PlanStatus string

const (
	PlanStatusPlanned      PlanStatus = "planned"
	PlanStatusApproved     PlanStatus = "approved"
	PlanStatusInProduction PlanStatus = "in_production"
	PlanStatusCompleted    PlanStatus = "completed"
)

// CropPlan is the derived growing requirement for one (recipe, harvest date)
// pair. Sibling orders sharing a harvest date aggregate into a single plan.
type CropPlan struct {
	ID          uuid.UUID
	RecipeID    uuid.UUID
	RecipeName  string
	HarvestDate time.Time
	GramsNeeded float64
	TraysNeeded int
	PlantByDate time.Time
	Status      PlanStatus
	OrderIDs    []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the plan can no longer be planted in time: the
// plant-by date has slipped more than the recipe's soak lead behind now.
func (p *CropPlan) IsOverdue(now time.Time, soakLead time.Duration) bool {
	return p.PlantByDate.Before(now.Add(-soakLead))
}

// TraysFor computes the tray count needed to grow the requested grams with
// the given per-tray yield.
func TraysFor(grams, yieldPerTray float64) int {
	if yieldPerTray <= 0 {
		return 0
	}
	return int(math.Ceil(grams / yieldPerTray))
}
