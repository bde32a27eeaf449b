package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "farmops_http_requests_total"
	MetricNameHTTPRequestDuration  = "farmops_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "farmops_http_requests_in_flight"

	MetricNameOrdersGenerated    = "farmops_orders_generated_total"
	MetricNameOrdersSkipped      = "farmops_orders_skipped_total"
	MetricNameBackfillFailures   = "farmops_backfill_failures_total"
	MetricNamePlansDerived       = "farmops_plans_derived_total"
	MetricNamePlanDeriveFailures = "farmops_plan_derive_failures_total"
	MetricNameTasksRescheduled   = "farmops_tasks_rescheduled_total"
	MetricNameRemindersSent      = "farmops_reminders_sent_total"
	MetricNameReminderFailures   = "farmops_reminder_failures_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextOrdersGenerated    = "Orders materialized from recurring templates"
	HelpTextOrdersSkipped      = "Occurrences skipped because an order already existed"
	HelpTextBackfillFailures   = "Templates whose backfill failed"
	HelpTextPlansDerived       = "Crop plans created or aggregated from orders"
	HelpTextPlanDeriveFailures = "Order line items that could not be planned"
	HelpTextTasksRescheduled   = "Stage task schedules created or updated"
	HelpTextRemindersSent      = "Reminders emitted by the monitor sweep"
	HelpTextReminderFailures   = "Reminder deliveries that failed per recipient"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOrderType = "order_type"
	LabelRecipe    = "recipe"
	LabelStage     = "stage"
	LabelCategory  = "category"
)

// HTTPLatencyBuckets are tuned for a store-bound internal API
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
