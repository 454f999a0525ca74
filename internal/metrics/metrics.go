package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)

	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRequestsRejected,
			Help:      HelpTextRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCasesOpened,
			Help:      HelpTextCasesOpened,
		},
		[]string{LabelCase, LabelRarity},
	)

	GoldSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGoldSpent,
			Help:      HelpTextGoldSpent,
		},
		[]string{LabelCase},
	)

	BattlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameBattlesTotal,
			Help:      HelpTextBattlesTotal,
		},
		[]string{LabelResult},
	)

	SilverEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSilverEarned,
			Help:      HelpTextSilverEarned,
		},
		[]string{LabelSource},
	)

	GoldEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGoldEarned,
			Help:      HelpTextGoldEarned,
		},
		[]string{LabelSource},
	)

	HarvestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHarvestsTotal,
			Help:      HelpTextHarvestsTotal,
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLoginsTotal,
			Help:      HelpTextLoginsTotal,
		},
	)
)

// RegisterSSEGauges exposes hub state as gauges read at scrape time.
// clients and dropped are usually sse.Hub methods.
func RegisterSSEGauges(reg prometheus.Registerer, clients func() int, dropped func() int64) error {
	if err := reg.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Namespace: Namespace, Name: MetricNameSSEClients, Help: HelpTextSSEClients},
		func() float64 { return float64(clients()) },
	)); err != nil {
		return err
	}
	return reg.Register(prometheus.NewCounterFunc(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameSSEDropped, Help: HelpTextSSEDropped},
		func() float64 { return float64(dropped()) },
	))
}
