package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "casesim"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRequestsRejected     = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCasesOpened   = "cases_opened_total"
	MetricNameGoldSpent     = "gold_spent_total"
	MetricNameBattlesTotal  = "battles_total"
	MetricNameSilverEarned  = "silver_earned_total"
	MetricNameGoldEarned    = "gold_earned_total"
	MetricNameHarvestsTotal = "harvests_total"
	MetricNameLoginsTotal   = "logins_total"
	MetricNameSSEClients    = "sse_clients"
	MetricNameSSEDropped    = "sse_dropped_events"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRequestsRejected     = "Requests refused by the security middleware, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCasesOpened   = "Total number of cases opened, by case and rarity of the drop"
	HelpTextGoldSpent     = "Total gold spent on cases"
	HelpTextBattlesTotal  = "Total number of battles, by result"
	HelpTextSilverEarned  = "Total silver credited, by source"
	HelpTextGoldEarned    = "Total gold credited, by source"
	HelpTextHarvestsTotal = "Total number of clicker presses"
	HelpTextLoginsTotal   = "Total number of mock logins"
	HelpTextSSEClients    = "Currently connected SSE clients"
	HelpTextSSEDropped    = "SSE deliveries skipped because a buffer was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelCase   = "case"
	LabelRarity = "rarity"
	LabelResult = "result"
	LabelSource = "source"
	LabelReason = "reason"
)

// Label values for the reason label
const (
	RejectReasonAuth      = "auth"
	RejectReasonRateLimit = "rate_limit"
)

// Label values for the source label
const (
	SourceBattle  = "battle"
	SourceHarvest = "harvest"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
