// Package ordergen materializes concrete orders from recurring templates.
package ordergen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/billing"
	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/repository"
)

// Config tunes generation behavior. The status thresholds are the historical
// backfill heuristic: how many days behind now a delivery date must be before
// the new order starts life as delivered or completed.
type Config struct {
	HorizonDays              int
	StatusDeliveredAfterDays int
	StatusCompletedAfterDays int
}

// DefaultConfig returns the observed production defaults
func DefaultConfig() Config {
	return Config{
		HorizonDays:              30,
		StatusDeliveredAfterDays: 1,
		StatusCompletedAfterDays: 7,
	}
}

// BackfillOptions narrows one backfill run. Zero values mean "use the
// template's own window": From defaults to the recurring start date (or the
// day after last generation), To defaults to now + horizon.
type BackfillOptions struct {
	From time.Time
	To   time.Time
}

// Service generates orders from recurring templates
type Service interface {
	// Backfill materializes the missing occurrences of one template up to
	// the target horizon. Running it twice over the same window creates no
	// duplicates.
	Backfill(ctx context.Context, templateID uuid.UUID, opts BackfillOptions) (*Report, error)

	// BackfillAll runs Backfill for every active template. A failing
	// template is reported and skipped; it never blocks the others.
	BackfillAll(ctx context.Context) (*Report, error)
}

// Report summarizes a generation run. It is always returned, even on partial
// failure, so callers never need the logs to know what happened.
type Report struct {
	TemplatesProcessed int
	Generated          int
	Skipped            int
	Failed             int
	Errors             []string
}

func (r *Report) merge(other *Report) {
	r.TemplatesProcessed += other.TemplatesProcessed
	r.Generated += other.Generated
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Errors = append(r.Errors, other.Errors...)
}

type service struct {
	repo      repository.Order
	periods   *billing.Registry
	publisher event.Bus
	cfg       Config
	now       func() time.Time
}

// NewService creates the generator
func NewService(repo repository.Order, periods *billing.Registry, publisher event.Bus, cfg Config) Service {
	return &service{
		repo:      repo,
		periods:   periods,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}
