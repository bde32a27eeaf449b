package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Pipeline Metrics
var (
	OrdersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersGenerated,
			Help: HelpTextOrdersGenerated,
		},
		[]string{LabelOrderType},
	)

	OrdersSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersSkipped,
			Help: HelpTextOrdersSkipped,
		},
	)

	BackfillFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBackfillFailures,
			Help: HelpTextBackfillFailures,
		},
	)

	PlansDerived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansDerived,
			Help: HelpTextPlansDerived,
		},
		[]string{LabelRecipe},
	)

	PlanDeriveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanDeriveFailures,
			Help: HelpTextPlanDeriveFailures,
		},
	)

	TasksRescheduled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksRescheduled,
			Help: HelpTextTasksRescheduled,
		},
		[]string{LabelStage},
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemindersSent,
			Help: HelpTextRemindersSent,
		},
		[]string{LabelCategory},
	)

	ReminderFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReminderFailures,
			Help: HelpTextReminderFailures,
		},
	)
)
