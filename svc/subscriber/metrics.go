package subscriber

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Signups         *prometheus.CounterVec
	WelcomeFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Signups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ghtimeline_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		WelcomeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "ghtimeline_welcome_email_failures_total",
			Help: "Welcome emails that could not be delivered",
		}),
	}
}

func (m *Metrics) signup(outcome string) {
	if m != nil {
		m.Signups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) welcomeFailed() {
	if m != nil {
		m.WelcomeFailures.Inc()
	}
}
