package timeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FetchDuration prometheus.Histogram
	FetchErrors   *prometheus.CounterVec
	EventsFetched prometheus.Counter
	CacheLookups  *prometheus.CounterVec
}

// NewMetrics registers the feed collectors with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ghtimeline_feed_fetch_duration_seconds",
			Help:    "Duration of public event feed requests",
			Buckets: prometheus.DefBuckets,
		}),
		FetchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ghtimeline_feed_fetch_errors_total",
			Help: "Failed public event feed requests by reason",
		}, []string{"reason"}),
		EventsFetched: f.NewCounter(prometheus.CounterOpts{
			Name: "ghtimeline_feed_events_fetched_total",
			Help: "Events returned by the public event feed after truncation",
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ghtimeline_feed_cache_lookups_total",
			Help: "Preview cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeError(reason string) {
	if m != nil {
		m.FetchErrors.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) observeFetch(seconds float64, n int) {
	if m != nil {
		m.FetchDuration.Observe(seconds)
		m.EventsFetched.Add(float64(n))
	}
}

func (m *Metrics) observeCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}
