package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskResource discriminates what kind of resource a task schedule watches
type TaskResource string

const (
	TaskResourceCrop TaskResource = "crop"
	TaskResourcePlan TaskResource = "plan"
)

// CropStageCondition is the typed condition payload for crop-stage tasks:
// which crop is due to move and to which stage.
type CropStageCondition struct {
	CropID      uuid.UUID `json:"crop_id"`
	TargetStage CropStage `json:"target_stage"`
}

// PlanCondition is the typed condition payload for plan-level reminders.
type PlanCondition struct {
	PlanID uuid.UUID `json:"plan_id"`
}

// TaskCondition is a tagged union over the per-resource condition payloads.
// Exactly the variant matching Kind is populated.
type TaskCondition struct {
	Kind      TaskResource        `json:"kind"`
	CropStage *CropStageCondition `json:"crop_stage,omitempty"`
	Plan      *PlanCondition      `json:"plan,omitempty"`
}

// TaskSchedule is an actionable reminder tied to one resource. A crop owns at
// most one active schedule at a time; it is rescheduled on every stage change
// and deactivated only when the crop is deleted or its order cancelled.
type TaskSchedule struct {
	ID           uuid.UUID
	ResourceType TaskResource
	NextRunAt    time.Time
	Active       bool
	Condition    TaskCondition
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CropID returns the crop the schedule watches, if it is a crop-stage task.
func (t *TaskSchedule) CropID() (uuid.UUID, bool) {
	if t.Condition.Kind == TaskResourceCrop && t.Condition.CropStage != nil {
		return t.Condition.CropStage.CropID, true
	}
	return uuid.Nil, false
}
