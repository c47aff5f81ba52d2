package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	FetchRetriesTotal  prometheus.Counter
	FetchFailuresTotal prometheus.Counter
	TaxLookupFailures  prometheus.Counter
	QueueDepth         prometheus.Gauge
	SearchDuration     prometheus.Histogram
	AlertsNotified     prometheus.Counter
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of search runs by query kind",
		}, []string{"kind"}),
		FetchRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_retries_total",
			Help:      "The total number of upstream fetches retried after a transient failure",
		}),
		FetchFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "The total number of upstream fetches degraded to an empty result",
		}),
		TaxLookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tax_lookup_failures_total",
			Help:      "The total number of boarding tax lookups that failed",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dispatch_queue_depth",
			Help:      "Number of search jobs waiting in the dispatch queue",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time taken to run one expanded search end to end",
			Buckets:   prometheus.DefBuckets,
		}),
		AlertsNotified: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_notified_total",
			Help:      "The total number of alert notifications sent",
		}),
	}
}
