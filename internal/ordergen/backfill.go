package ordergen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/calendar"
	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/metrics"
)

// deliveryLag returns how far delivery trails harvest for an order type.
// Delivered channels get a day for packing and transport; market pickups go
// out the day they are cut.
func deliveryLag(t domain.OrderType) time.Duration {
	switch t {
	case domain.OrderTypeFarmersMarket:
		return 0
	default:
		return 24 * time.Hour
	}
}

// BackfillAll runs Backfill for every active template
func (s *service) BackfillAll(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)

	templates, err := s.repo.GetActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active templates: %w", err)
	}

	total := &Report{}
	for i := range templates {
		report, err := s.Backfill(ctx, templates[i].ID, BackfillOptions{})
		if err != nil {
			// Per-template isolation: record and move on
			log.Error("template backfill failed", "template_id", templates[i].ID, "error", err)
			metrics.BackfillFailures.Inc()
			total.TemplatesProcessed++
			total.Failed++
			total.Errors = append(total.Errors, fmt.Sprintf("template %s: %v", templates[i].ID, err))
			continue
		}
		total.merge(report)
	}

	log.Info("backfill run complete",
		"templates", total.TemplatesProcessed,
		"generated", total.Generated,
		"skipped", total.Skipped,
		"failed", total.Failed)
	return total, nil
}

// Backfill materializes the missing occurrences of one template
func (s *service) Backfill(ctx context.Context, templateID uuid.UUID, opts BackfillOptions) (*Report, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	template, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsTemplate() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotTemplate, templateID)
	}
	if !template.Active {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateInactive, templateID)
	}

	cursor, err := s.seedCursor(template, opts)
	if err != nil {
		return nil, err
	}

	to := opts.To
	if to.IsZero() {
		to = now.AddDate(0, 0, s.cfg.HorizonDays)
	}
	to = calendar.Truncate(to)
	// Clamp to the template's end date
	if template.EndDate != nil && to.After(*template.EndDate) {
		to = calendar.Truncate(*template.EndDate)
	}

	existing, err := s.repo.GetGeneratedDeliveryDates(ctx, templateID, cursor, to.Add(48*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load existing occurrences: %w", err)
	}
	seen := make(map[time.Time]bool, len(existing))
	for _, d := range existing {
		seen[calendar.Truncate(d)] = true
	}

	report := &Report{TemplatesProcessed: 1}
	lag := deliveryLag(template.Type)
	var created []domain.Order

	for !cursor.After(to) {
		harvest := cursor
		delivery := calendar.Truncate(harvest.Add(lag))

		if seen[delivery] {
			report.Skipped++
		} else {
			created = append(created, s.materialize(template, harvest, delivery, now))
			seen[delivery] = true
		}

		cursor, err = calendar.NextOccurrence(cursor, template.Frequency, template.EffectiveInterval())
		if err != nil {
			return nil, err
		}
	}

	// cursor now holds the first occurrence past the window; past the
	// template's end date it becomes nil and deactivates generation.
	nextGeneration := &cursor
	if template.EndDate != nil && cursor.After(calendar.Truncate(*template.EndDate)) {
		nextGeneration = nil
	}

	if err := s.repo.CreateGeneratedOrders(ctx, templateID, created, now, nextGeneration); err != nil {
		return nil, fmt.Errorf("failed to persist generated orders: %w", err)
	}
	report.Generated = len(created)

	for i := range created {
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, event.NewOrderGeneratedEvent(&created[i])); err != nil {
				log.Warn("failed to publish order event", "order_id", created[i].ID, "error", err)
			}
		}
	}
	if report.Skipped > 0 {
		metrics.OrdersSkipped.Add(float64(report.Skipped))
	}

	log.Info("template backfilled",
		"template_id", templateID,
		"generated", report.Generated,
		"skipped", report.Skipped,
		"next_generation", nextGeneration)
	return report, nil
}

// seedCursor picks the first candidate occurrence: an explicit override, the
// template's recurring start date, or the day after the last generation.
func (s *service) seedCursor(template *domain.Order, opts BackfillOptions) (time.Time, error) {
	if !opts.From.IsZero() {
		return calendar.Truncate(opts.From), nil
	}
	if template.StartDate != nil {
		start := calendar.Truncate(*template.StartDate)
		if template.LastGeneratedAt == nil {
			return start, nil
		}
		if template.NextGenerationDate != nil {
			return calendar.Truncate(*template.NextGenerationDate), nil
		}
		return start, nil
	}
	if template.LastGeneratedAt != nil {
		return calendar.Truncate(template.LastGeneratedAt.AddDate(0, 0, 1)), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", domain.ErrMissingStartDate, template.ID)
}

// materialize builds one generated order carrying the template's lines and
// packaging, with status and billing period assigned.
func (s *service) materialize(template *domain.Order, harvest, delivery, now time.Time) domain.Order {
	id := uuid.New()
	parentID := template.ID

	items := make([]domain.LineItem, len(template.Items))
	for i, item := range template.Items {
		items[i] = domain.LineItem{
			ID:        uuid.New(),
			OrderID:   id,
			Product:   item.Product,
			Variation: item.Variation,
			Grams:     item.Grams,
			Price:     item.Price,
		}
	}

	period := s.periods.Assign(template.Type, delivery)
	periodStart := period.Start
	periodEnd := period.End

	return domain.Order{
		ID:                 id,
		ParentID:           &parentID,
		IsRecurring:        false,
		Type:               template.Type,
		Status:             s.initialStatus(delivery, now),
		Customer:           template.Customer,
		HarvestDate:        &harvest,
		DeliveryDate:       &delivery,
		BillingPeriod:      period.Label,
		BillingPeriodStart: &periodStart,
		BillingPeriodEnd:   &periodEnd,
		Items:              items,
		Packaging:          template.Packaging,
	}
}

// initialStatus implements the backfill status heuristic: orders whose
// delivery date is far enough in the past start life already delivered or
// completed.
func (s *service) initialStatus(delivery, now time.Time) domain.OrderStatus {
	today := calendar.Truncate(now)
	delivery = calendar.Truncate(delivery)

	daysPast := int(today.Sub(delivery).Hours() / 24)
	switch {
	case daysPast > s.cfg.StatusCompletedAfterDays:
		return domain.OrderStatusCompleted
	case daysPast >= s.cfg.StatusDeliveredAfterDays && daysPast >= 1:
		return domain.OrderStatusDelivered
	default:
		return domain.OrderStatusPending
	}
}
