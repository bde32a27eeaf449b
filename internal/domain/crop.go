package domain

import (
	"time"

	"github.com/google/uuid"
)

// Crop is one tray/batch realizing part of a CropPlan. Stage transitions are
// manual: services may compute when a transition is due but never perform it.
type Crop struct {
	ID           uuid.UUID
	PlanID       uuid.UUID
	RecipeID     uuid.UUID
	TrayNumber   int
	CurrentStage CropStage

	// StageEnteredAt records when the crop entered each stage it has reached.
	// Entries survive rollback so re-entering a stage keeps its original
	// entry time.
	StageEnteredAt map[CropStage]time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentStageEnteredAt returns when the crop entered its current stage.
func (c *Crop) CurrentStageEnteredAt() (time.Time, bool) {
	t, ok := c.StageEnteredAt[c.CurrentStage]
	return t, ok
}

// Harvested reports whether the crop has reached its terminal stage.
func (c *Crop) Harvested() bool {
	return c.CurrentStage == StageHarvested
}

// TimeToNextStage is the remaining time before the crop's current stage is
// due to end, derived from the recipe's stage duration and the stage entry
// time. Negative when the transition is overdue.
func (c *Crop) TimeToNextStage(r *Recipe, now time.Time) (time.Duration, bool) {
	entered, ok := c.CurrentStageEnteredAt()
	if !ok {
		return 0, false
	}
	duration, ok := r.StageDuration(c.CurrentStage)
	if !ok {
		return 0, false
	}
	return entered.Add(duration).Sub(now), true
}
