// Package stagetask keeps each crop's single active task schedule pointing at
// its next stage transition. Transitions themselves are manual: Advance and
// Rollback move a crop only when a person asks; the scheduler never does.
package stagetask

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/metrics"
	"github.com/tillerhq/farmops/internal/repository"
)

// Service manages crop stage transitions and their reminder schedules
type Service interface {
	// ScheduleStageTasks computes when the crop's current stage ends and
	// upserts its task schedule to that time. Harvested crops get their
	// schedule deactivated instead.
	ScheduleStageTasks(ctx context.Context, cropID uuid.UUID) error

	// Advance moves the crop to its next stage and reschedules.
	Advance(ctx context.Context, cropID uuid.UUID) (*domain.Crop, error)

	// Rollback moves the crop back one stage, keeping the stage's original
	// entry time, and reschedules.
	Rollback(ctx context.Context, cropID uuid.UUID) (*domain.Crop, error)

	// RescheduleAll recomputes schedules for every active crop. Crops whose
	// recipe vanished are skipped with a warning.
	RescheduleAll(ctx context.Context) (int, error)

	// DeactivateForOrder deactivates the schedules of crops grown solely
	// for a cancelled order.
	DeactivateForOrder(ctx context.Context, orderID uuid.UUID) (int, error)
}

type service struct {
	crops     repository.Crop
	recipes   repository.Recipe
	tasks     repository.Task
	publisher event.Bus
	now       func() time.Time
}

// NewService creates the stage-task service
func NewService(crops repository.Crop, recipes repository.Recipe, tasks repository.Task, publisher event.Bus) Service {
	return &service{
		crops:     crops,
		recipes:   recipes,
		tasks:     tasks,
		publisher: publisher,
		now:       time.Now,
	}
}

// ScheduleStageTasks upserts the crop's schedule for its current stage
func (s *service) ScheduleStageTasks(ctx context.Context, cropID uuid.UUID) error {
	crop, err := s.crops.GetCrop(ctx, cropID)
	if err != nil {
		return err
	}
	recipe, err := s.recipes.GetRecipe(ctx, crop.RecipeID)
	if err != nil {
		return err
	}
	return s.reschedule(ctx, crop, recipe)
}

func (s *service) reschedule(ctx context.Context, crop *domain.Crop, recipe *domain.Recipe) error {
	log := logger.FromContext(ctx)

	if crop.Harvested() {
		if err := s.tasks.DeactivateCropTask(ctx, crop.ID); err != nil {
			return fmt.Errorf("failed to deactivate task for harvested crop: %w", err)
		}
		return nil
	}

	entered, ok := crop.CurrentStageEnteredAt()
	if !ok {
		return fmt.Errorf("crop %s has no entry time for stage %s", crop.ID, crop.CurrentStage)
	}
	duration, ok := recipe.StageDuration(crop.CurrentStage)
	if !ok {
		return fmt.Errorf("%w: recipe %s stage %s", domain.ErrNoStageDuration, recipe.Name, crop.CurrentStage)
	}
	target, ok := recipe.NextStage(crop.CurrentStage)
	if !ok {
		return fmt.Errorf("%w: recipe %s stage %s", domain.ErrNoStageDuration, recipe.Name, crop.CurrentStage)
	}

	task := &domain.TaskSchedule{
		ID:           uuid.New(),
		ResourceType: domain.TaskResourceCrop,
		NextRunAt:    entered.Add(duration),
		Active:       true,
		Condition: domain.TaskCondition{
			Kind: domain.TaskResourceCrop,
			CropStage: &domain.CropStageCondition{
				CropID:      crop.ID,
				TargetStage: target,
			},
		},
	}

	if err := s.tasks.UpsertCropTask(ctx, task); err != nil {
		return fmt.Errorf("failed to upsert task schedule: %w", err)
	}

	metrics.TasksRescheduled.WithLabelValues(string(crop.CurrentStage)).Inc()
	log.Info("stage task scheduled",
		"crop_id", crop.ID,
		"stage", crop.CurrentStage,
		"target", target,
		"due", task.NextRunAt)
	return nil
}

// Advance moves the crop forward one stage
func (s *service) Advance(ctx context.Context, cropID uuid.UUID) (*domain.Crop, error) {
	crop, err := s.crops.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if crop.Harvested() {
		return nil, fmt.Errorf("%w: crop %s", domain.ErrAtTerminalStage, cropID)
	}
	recipe, err := s.recipes.GetRecipe(ctx, crop.RecipeID)
	if err != nil {
		return nil, err
	}

	next, ok := recipe.NextStage(crop.CurrentStage)
	if !ok {
		return nil, fmt.Errorf("%w: crop %s", domain.ErrAtTerminalStage, cropID)
	}
	return s.transition(ctx, crop, recipe, next, false)
}

// Rollback moves the crop back one stage
func (s *service) Rollback(ctx context.Context, cropID uuid.UUID) (*domain.Crop, error) {
	crop, err := s.crops.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetRecipe(ctx, crop.RecipeID)
	if err != nil {
		return nil, err
	}

	previous, ok := recipe.PreviousStage(crop.CurrentStage)
	if !ok {
		return nil, fmt.Errorf("%w: crop %s", domain.ErrAtFirstStage, cropID)
	}
	return s.transition(ctx, crop, recipe, previous, true)
}

func (s *service) transition(ctx context.Context, crop *domain.Crop, recipe *domain.Recipe, to domain.CropStage, rollback bool) (*domain.Crop, error) {
	log := logger.FromContext(ctx)
	from := crop.CurrentStage

	crop.CurrentStage = to
	if crop.StageEnteredAt == nil {
		crop.StageEnteredAt = make(map[domain.CropStage]time.Time)
	}
	// Rolling back keeps the stage's original entry time so the redone
	// transition comes due at the same moment it originally would have
	if _, seen := crop.StageEnteredAt[to]; !seen || !rollback {
		crop.StageEnteredAt[to] = s.now().UTC()
	}

	if err := s.crops.UpdateCropStage(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to persist stage change: %w", err)
	}
	if err := s.reschedule(ctx, crop, recipe); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewCropStageChangedEvent(crop.ID, from, to, rollback)); err != nil {
			log.Warn("failed to publish stage change", "crop_id", crop.ID, "error", err)
		}
	}

	log.Info("crop stage changed", "crop_id", crop.ID, "from", from, "to", to, "rollback", rollback)
	return crop, nil
}

// RescheduleAll recomputes schedules for every active crop
func (s *service) RescheduleAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	crops, err := s.crops.ListActiveCrops(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active crops: %w", err)
	}

	rescheduled := 0
	for i := range crops {
		recipe, err := s.recipes.GetRecipe(ctx, crops[i].RecipeID)
		if err != nil {
			if errors.Is(err, domain.ErrRecipeNotFound) {
				log.Warn("crop has no recipe, skipping", "crop_id", crops[i].ID, "recipe_id", crops[i].RecipeID)
				continue
			}
			return rescheduled, err
		}
		if err := s.reschedule(ctx, &crops[i], recipe); err != nil {
			log.Warn("failed to reschedule crop", "crop_id", crops[i].ID, "error", err)
			continue
		}
		rescheduled++
	}

	log.Info("reschedule sweep complete", "crops", len(crops), "rescheduled", rescheduled)
	return rescheduled, nil
}

// DeactivateForOrder deactivates schedules for a cancelled order's crops
func (s *service) DeactivateForOrder(ctx context.Context, orderID uuid.UUID) (int, error) {
	log := logger.FromContext(ctx)

	crops, err := s.crops.ListCropsByOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to list crops for order: %w", err)
	}

	deactivated := 0
	for i := range crops {
		if err := s.tasks.DeactivateCropTask(ctx, crops[i].ID); err != nil {
			log.Warn("failed to deactivate task", "crop_id", crops[i].ID, "error", err)
			continue
		}
		deactivated++
	}

	log.Info("order task schedules deactivated", "order_id", orderID, "count", deactivated)
	return deactivated, nil
}
