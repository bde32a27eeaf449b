package domain

import (
	"time"

	"github.com/google/uuid"
)

// CropStage is a phase in a crop's grow cycle
type CropStage string

const (
	StageSoaking     CropStage = "soaking"
	StageGermination CropStage = "germination"
	StageBlackout    CropStage = "blackout"
	StageLight       CropStage = "light"
	StageHarvested   CropStage = "harvested"
)

// stageOrder is the canonical forward ordering of stages. Recipes may skip
// soaking and blackout; germination and light are always present.
var stageOrder = []CropStage{StageSoaking, StageGermination, StageBlackout, StageLight, StageHarvested}

// Recipe describes how one variety is grown: per-stage durations and the
// expected yield of a standard tray.
type Recipe struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Product string    `json:"product"`

	SoakHours       int `json:"soak_hours"`
	GerminationDays int `json:"germination_days"`
	BlackoutDays    int `json:"blackout_days"`
	LightDays       int `json:"light_days"`

	YieldGramsPerTray float64 `json:"yield_grams_per_tray"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TotalGrowDuration is the full seed-to-harvest span, soak lead included.
func (r *Recipe) TotalGrowDuration() time.Duration {
	days := r.GerminationDays + r.BlackoutDays + r.LightDays
	return time.Duration(days)*24*time.Hour + r.SoakLead()
}

// SoakLead is the soak time that precedes germination, zero when the recipe
// has no soak stage.
func (r *Recipe) SoakLead() time.Duration {
	return time.Duration(r.SoakHours) * time.Hour
}

// StageDuration returns the configured duration of a stage. ok is false when
// the recipe does not include the stage or the stage has no duration
// (harvested is terminal).
func (r *Recipe) StageDuration(stage CropStage) (time.Duration, bool) {
	switch stage {
	case StageSoaking:
		if r.SoakHours <= 0 {
			return 0, false
		}
		return time.Duration(r.SoakHours) * time.Hour, true
	case StageGermination:
		if r.GerminationDays <= 0 {
			return 0, false
		}
		return time.Duration(r.GerminationDays) * 24 * time.Hour, true
	case StageBlackout:
		if r.BlackoutDays <= 0 {
			return 0, false
		}
		return time.Duration(r.BlackoutDays) * 24 * time.Hour, true
	case StageLight:
		if r.LightDays <= 0 {
			return 0, false
		}
		return time.Duration(r.LightDays) * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Stages returns the ordered subset of stages this recipe uses, ending with
// harvested.
func (r *Recipe) Stages() []CropStage {
	stages := make([]CropStage, 0, len(stageOrder))
	for _, s := range stageOrder {
		if s == StageHarvested {
			stages = append(stages, s)
			continue
		}
		if _, ok := r.StageDuration(s); ok {
			stages = append(stages, s)
		}
	}
	return stages
}

// FirstStage is the stage a freshly created crop enters.
func (r *Recipe) FirstStage() CropStage {
	return r.Stages()[0]
}

// NextStage returns the stage that follows current in this recipe's cycle.
// ok is false when current is harvested or not part of the recipe.
func (r *Recipe) NextStage(current CropStage) (CropStage, bool) {
	stages := r.Stages()
	for i, s := range stages {
		if s == current && i+1 < len(stages) {
			return stages[i+1], true
		}
	}
	return "", false
}

// PreviousStage returns the stage that precedes current in this recipe's
// cycle. ok is false when current is the first stage or not part of the recipe.
func (r *Recipe) PreviousStage(current CropStage) (CropStage, bool) {
	stages := r.Stages()
	for i, s := range stages {
		if s == current && i > 0 {
			return stages[i-1], true
		}
	}
	return "", false
}
