// Package monitor runs the periodic read-only sweep over open plans and
// active task schedules. It categorizes items by how close their due time is
// and emits reminders for anything overdue or urgent. It never transitions a
// crop or mutates a plan.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/metrics"
	"github.com/tillerhq/farmops/internal/notify"
	"github.com/tillerhq/farmops/internal/repository"
)

// Category buckets an item by its proximity to the due time
type Category string

const (
	CategoryOverdue  Category = "overdue"
	CategoryUrgent   Category = "urgent"
	CategoryUpcoming Category = "upcoming"
	CategoryOnTrack  Category = "on_track"
)

// Item is one monitored plan or task with its computed category
type Item struct {
	Category  Category
	Resource  string
	Reference string
	DueAt     time.Time
	Detail    string
}

// Report is the outcome of one sweep
type Report struct {
	Items         []Item
	Overdue       int
	Urgent        int
	Upcoming      int
	OnTrack       int
	RemindersSent int
	Errors        []string
}

// Config sets the category lookahead windows
type Config struct {
	UrgentWindow   time.Duration
	UpcomingWindow time.Duration
	Recipients     []string
}

// DefaultConfig matches the documented 2-day / 7-day lookaheads
func DefaultConfig() Config {
	return Config{
		UrgentWindow:   48 * time.Hour,
		UpcomingWindow: 168 * time.Hour,
	}
}

// Service runs monitoring sweeps
type Service interface {
	// Sweep categorizes every open plan and active task schedule, then
	// sends one reminder per overdue or urgent item. Reminders are
	// at-least-once: a still-urgent item is reminded again next sweep.
	Sweep(ctx context.Context) (*Report, error)
}

type service struct {
	plans     repository.Plan
	tasks     repository.Task
	notifier  notify.Notifier
	publisher event.Bus
	cfg       Config
	now       func() time.Time
}

// NewService creates the monitor
func NewService(plans repository.Plan, tasks repository.Task, notifier notify.Notifier, publisher event.Bus, cfg Config) Service {
	return &service{
		plans:     plans,
		tasks:     tasks,
		notifier:  notifier,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Sweep categorizes open work and reminds about anything pressing
func (s *service) Sweep(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()
	report := &Report{}

	plans, err := s.plans.ListOpenPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open plans: %w", err)
	}
	for i := range plans {
		p := &plans[i]
		detail := fmt.Sprintf("plant %d trays of %s by %s for harvest %s",
			p.TraysNeeded, p.RecipeName,
			p.PlantByDate.Format("2006-01-02"),
			p.HarvestDate.Format("2006-01-02"))
		report.add(s.categorize(now, p.PlantByDate), "plan", p.ID.String(), p.PlantByDate, detail)
	}

	tasks, err := s.tasks.ListActiveTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tasks: %w", err)
	}
	for i := range tasks {
		t := &tasks[i]
		detail := "task due"
		reference := t.ID.String()
		if cond := t.Condition.CropStage; cond != nil {
			detail = fmt.Sprintf("move crop %s to %s", cond.CropID, cond.TargetStage)
			reference = cond.CropID.String()
		}
		report.add(s.categorize(now, t.NextRunAt), string(t.ResourceType), reference, t.NextRunAt, detail)
	}

	s.remind(ctx, report)

	log.Info("monitor sweep complete",
		"overdue", report.Overdue,
		"urgent", report.Urgent,
		"upcoming", report.Upcoming,
		"on_track", report.OnTrack,
		"reminders", report.RemindersSent)
	return report, nil
}

func (s *service) categorize(now, due time.Time) Category {
	switch {
	case due.Before(now):
		return CategoryOverdue
	case !due.After(now.Add(s.cfg.UrgentWindow)):
		return CategoryUrgent
	case !due.After(now.Add(s.cfg.UpcomingWindow)):
		return CategoryUpcoming
	default:
		return CategoryOnTrack
	}
}

// remind sends one reminder per overdue/urgent item. Per-recipient failures
// are collected without aborting the rest of the batch.
func (s *service) remind(ctx context.Context, report *Report) {
	log := logger.FromContext(ctx)
	if s.notifier == nil || len(s.cfg.Recipients) == 0 {
		return
	}

	for _, item := range report.Items {
		if item.Category != CategoryOverdue && item.Category != CategoryUrgent {
			continue
		}

		msg := notify.Message{
			Subject: fmt.Sprintf("[%s] %s %s", item.Category, item.Resource, item.Reference),
			Body:    item.Detail,
		}
		results := s.notifier.Notify(ctx, s.cfg.Recipients, msg)
		for _, r := range results {
			if r.Err != nil {
				metrics.ReminderFailures.Inc()
				report.Errors = append(report.Errors,
					fmt.Sprintf("%s %s: notify %s: %v", item.Resource, item.Reference, r.Recipient, r.Err))
				log.Warn("reminder delivery failed",
					"resource", item.Resource,
					"reference", item.Reference,
					"recipient", r.Recipient,
					"error", r.Err)
			}
		}
		if notify.FailedCount(results) < len(results) {
			report.RemindersSent++
			metrics.RemindersSent.WithLabelValues(string(item.Category)).Inc()
			if s.publisher != nil {
				if err := s.publisher.Publish(ctx, event.NewReminderSentEvent(string(item.Category), item.Resource, item.Reference)); err != nil {
					log.Warn("failed to publish reminder event", "error", err)
				}
			}
		}
	}
}

func (r *Report) add(category Category, resource, reference string, due time.Time, detail string) {
	r.Items = append(r.Items, Item{
		Category:  category,
		Resource:  resource,
		Reference: reference,
		DueAt:     due,
		Detail:    detail,
	})
	switch category {
	case CategoryOverdue:
		r.Overdue++
	case CategoryUrgent:
		r.Urgent++
	case CategoryUpcoming:
		r.Upcoming++
	case CategoryOnTrack:
		r.OnTrack++
	}
}
