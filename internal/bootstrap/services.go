package bootstrap

import (
	"github.com/tillerhq/farmops/internal/billing"
	"github.com/tillerhq/farmops/internal/config"
	"github.com/tillerhq/farmops/internal/cropplan"
	"github.com/tillerhq/farmops/internal/event"
	"github.com/tillerhq/farmops/internal/monitor"
	"github.com/tillerhq/farmops/internal/notify"
	"github.com/tillerhq/farmops/internal/ordergen"
	"github.com/tillerhq/farmops/internal/stagetask"
)

// Services holds the pipeline services in dependency order
type Services struct {
	Generator ordergen.Service
	StageTask stagetask.Service
	Deriver   cropplan.Service
	Monitor   monitor.Service
}

// InitializeServices wires the pipeline services onto the repositories
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus, notifier notify.Notifier) *Services {
	generator := ordergen.NewService(repos.Order, billing.NewRegistry(), bus, ordergen.Config{
		HorizonDays:              cfg.HorizonDays,
		StatusDeliveredAfterDays: cfg.StatusDeliveredAfterDays,
		StatusCompletedAfterDays: cfg.StatusCompletedAfterDays,
	})

	stageTasks := stagetask.NewService(repos.Crop, repos.Recipe, repos.Task, bus)

	deriver := cropplan.NewService(repos.Order, repos.Plan, repos.Crop, repos.Recipe,
		stageTasks, bus, cropplan.Config{HorizonDays: cfg.HorizonDays})

	mon := monitor.NewService(repos.Plan, repos.Task, notifier, bus, monitor.Config{
		UrgentWindow:   cfg.UrgentWindow,
		UpcomingWindow: cfg.UpcomingWindow,
		Recipients:     cfg.ReminderRecipients,
	})

	return &Services{
		Generator: generator,
		StageTask: stageTasks,
		Deriver:   deriver,
		Monitor:   mon,
	}
}
