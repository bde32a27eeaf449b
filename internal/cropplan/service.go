// Package cropplan derives growing requirements from generated orders:
// how many trays of which recipe must be planted, and by when, to meet each
// harvest date.
package cropplan

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

// StageScheduler is the slice of the stage-task service the deriver needs
// when it starts production for a plan.
type StageScheduler interface {
	ScheduleStageTasks(ctx context.Context, cropID uuid.UUID) error
}

// Service derives crop plans from orders
type Service interface {
	// DeriveForOrder computes or aggregates the plans covering one order's
	// line items. Line items without a resolvable recipe are collected as
	// errors, not fatal.
	DeriveForOrder(ctx context.Context, orderID uuid.UUID) (*Report, error)

	// DeriveForHarvestDate derives plans for every order harvesting on the
	// given day, aggregating same-recipe demand into shared plans.
	DeriveForHarvestDate(ctx context.Context, harvest time.Time) (*Report, error)

	// DeriveAll derives plans for every generated order up to the horizon
	// that has none yet. Per-order failures are isolated.
	DeriveAll(ctx context.Context) (*Report, error)

	// StartProduction approves a plan, creates its tray crops at the first
	// recipe stage, and schedules their stage tasks.
	StartProduction(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error)
}

// Report summarizes a derivation run. Skipped counts plan writes for orders
// the stored plan already referenced.
type Report struct {
	OrdersProcessed int
	PlansCreated    int
	PlansAggregated int
	Skipped         int
	Failed          int
	Errors          []string
}

func (r *Report) merge(other *Report) {
	r.OrdersProcessed += other.OrdersProcessed
	r.PlansCreated += other.PlansCreated
	r.PlansAggregated += other.PlansAggregated
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Errors = append(r.Errors, other.Errors...)
}

// Config tunes the derivation sweep
type Config struct {
	HorizonDays int
}

type service struct {
	orders    repository.Order
	plans     repository.Plan
	crops     repository.Crop
	recipes   repository.Recipe
	scheduler StageScheduler
	publisher event.Bus
	cfg       Config
	now       func() time.Time
}

// NewService creates the deriver
func NewService(orders repository.Order, plans repository.Plan, crops repository.Crop, recipes repository.Recipe, scheduler StageScheduler, publisher event.Bus, cfg Config) Service {
	return &service{
		orders:    orders,
		plans:     plans,
		crops:     crops,
		recipes:   recipes,
		scheduler: scheduler,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// DeriveAll derives plans for every unplanned order inside the horizon
func (s *service) DeriveAll(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)

	horizon := s.now().UTC().AddDate(0, 0, s.cfg.HorizonDays)
	orders, err := s.orders.GetOrdersWithoutPlans(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to load unplanned orders: %w", err)
	}

	total := &Report{}
	for i := range orders {
		report, err := s.DeriveForOrder(ctx, orders[i].ID)
		if err != nil {
			log.Error("plan derivation failed", "order_id", orders[i].ID, "error", err)
			total.OrdersProcessed++
			total.Failed++
			total.Errors = append(total.Errors, fmt.Sprintf("order %s: %v", orders[i].ID, err))
			continue
		}
		total.merge(report)
	}

	log.Info("derivation run complete",
		"orders", total.OrdersProcessed,
		"created", total.PlansCreated,
		"aggregated", total.PlansAggregated,
		"skipped", total.Skipped,
		"failed", total.Failed)
	return total, nil
}

// DeriveForHarvestDate derives plans for every order harvesting on one day
func (s *service) DeriveForHarvestDate(ctx context.Context, harvest time.Time) (*Report, error) {
	log := logger.FromContext(ctx)

	orders, err := s.orders.GetOrdersByHarvestDate(ctx, harvest)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for harvest date: %w", err)
	}

	total := &Report{}
	for i := range orders {
		report, err := s.DeriveForOrder(ctx, orders[i].ID)
		if err != nil {
			log.Error("plan derivation failed", "order_id", orders[i].ID, "error", err)
			total.OrdersProcessed++
			total.Failed++
			total.Errors = append(total.Errors, fmt.Sprintf("order %s: %v", orders[i].ID, err))
			continue
		}
		total.merge(report)
	}
	return total, nil
}

// DeriveForOrder computes or aggregates the plans covering one order
func (s *service) DeriveForOrder(ctx context.Context, orderID uuid.UUID) (*Report, error) {
	log := logger.FromContext(ctx)

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderCancelled, orderID)
	}
	if order.HarvestDate == nil {
		return nil, fmt.Errorf("order %s has no harvest date", orderID)
	}
	harvest := *order.HarvestDate

	report := &Report{OrdersProcessed: 1}

	// Pool line items by recipe first so duplicate products within one
	// order share a tray count computed from their combined weight.
	pooled := make(map[uuid.UUID]float64)
	recipes := make(map[uuid.UUID]*domain.Recipe)
	var recipeOrder []uuid.UUID
	for _, item := range order.Items {
		recipe, err := s.recipes.GetRecipeByProduct(ctx, item.Product)
		if err != nil {
			if errors.Is(err, domain.ErrRecipeNotFound) {
				// Collected, not fatal: the rest of the order still plans
				log.Warn("no recipe for line item", "order_id", orderID, "product", item.Product)
				metrics.PlanDeriveFailures.Inc()
				report.Failed++
				report.Errors = append(report.Errors, fmt.Sprintf("order %s: no recipe for %q", orderID, item.Product))
				continue
			}
			return nil, err
		}
		if _, seen := pooled[recipe.ID]; !seen {
			recipes[recipe.ID] = recipe
			recipeOrder = append(recipeOrder, recipe.ID)
		}
		pooled[recipe.ID] += item.Grams
	}
	if len(recipeOrder) == 0 {
		return report, nil
	}

	batch := make([]*domain.CropPlan, 0, len(recipeOrder))
	for _, recipeID := range recipeOrder {
		recipe := recipes[recipeID]
		grams := pooled[recipeID]
		batch = append(batch, &domain.CropPlan{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			RecipeName:  recipe.Name,
			HarvestDate: harvest,
			GramsNeeded: grams,
			TraysNeeded: domain.TraysFor(grams, recipe.YieldGramsPerTray),
			PlantByDate: harvest.Add(-recipe.TotalGrowDuration()),
			Status:      domain.PlanStatusPlanned,
			OrderIDs:    []uuid.UUID{orderID},
		})
	}

	// One transaction per order: a failure on any plan write rolls the
	// whole order back, so no half-aggregated demand survives.
	results, err := s.plans.UpsertPlans(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert plans for order %s: %w", orderID, err)
	}

	for i, result := range results {
		stored := result.Plan
		recipe := recipes[batch[i].RecipeID]

		switch {
		case result.Created:
			report.PlansCreated++
		case result.Merged:
			report.PlansAggregated++
		default:
			// The stored plan already references this order; a repeat
			// derivation must not double the planted demand.
			report.Skipped++
			continue
		}

		if stored.IsOverdue(s.now().UTC(), recipe.SoakLead()) {
			log.Warn("plan is overdue",
				"plan_id", stored.ID,
				"recipe", recipe.Name,
				"plant_by", stored.PlantByDate,
				"harvest", stored.HarvestDate)
		}

		if s.publisher != nil {
			eventType := event.PlanCreated
			if result.Merged {
				eventType = event.PlanUpdated
			}
			if err := s.publisher.Publish(ctx, event.NewPlanEvent(eventType, stored)); err != nil {
				log.Warn("failed to publish plan event", "plan_id", stored.ID, "error", err)
			}
		}
	}

	return report, nil
}

// StartProduction approves a plan and creates its crops
func (s *service) StartProduction(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	plan, err := s.plans.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetRecipe(ctx, plan.RecipeID)
	if err != nil {
		return nil, err
	}

	firstStage := recipe.FirstStage()
	crops := make([]domain.Crop, plan.TraysNeeded)
	for i := range crops {
		crops[i] = domain.Crop{
			ID:           uuid.New(),
			PlanID:       plan.ID,
			RecipeID:     recipe.ID,
			TrayNumber:   i + 1,
			CurrentStage: firstStage,
			StageEnteredAt: map[domain.CropStage]time.Time{
				firstStage: now,
			},
		}
	}

	if err := s.crops.CreateCrops(ctx, crops); err != nil {
		return nil, fmt.Errorf("failed to create crops: %w", err)
	}
	if err := s.plans.UpdatePlanStatus(ctx, plan.ID, domain.PlanStatusInProduction); err != nil {
		return nil, err
	}

	for i := range crops {
		if err := s.scheduler.ScheduleStageTasks(ctx, crops[i].ID); err != nil {
			// A crop without a schedule is caught by the resched sweep
			log.Warn("failed to schedule stage task", "crop_id", crops[i].ID, "error", err)
		}
	}

	log.Info("production started", "plan_id", plan.ID, "trays", len(crops), "stage", firstStage)
	return crops, nil
}
