package delivery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Sends         *prometheus.CounterVec
	BatchDuration prometheus.Histogram
	BatchSize     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Sends: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ghtimeline_delivery_sends_total",
			Help: "Digest sends by result",
		}, []string{"result"}),
		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ghtimeline_delivery_batch_duration_seconds",
			Help:    "Wall time of one bulk delivery",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ghtimeline_delivery_batch_recipients",
			Help:    "Recipients per bulk delivery",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *Metrics) send(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.Sends.WithLabelValues("sent").Inc()
		return
	}
	m.Sends.WithLabelValues("failed").Inc()
}

func (m *Metrics) batch(seconds float64, n int) {
	if m != nil {
		m.BatchDuration.Observe(seconds)
		m.BatchSize.Observe(float64(n))
	}
}
