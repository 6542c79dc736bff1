package views

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts view activity. A nil *Metrics records nothing.
type Metrics struct {
	fetches *prometheus.CounterVec
	stale   *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence",
			Subsystem: "view",
			Name:      "selections_total",
			Help:      "Selections handled by a view, by outcome.",
		}, []string{"view", "outcome"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence",
			Subsystem: "view",
			Name:      "stale_responses_total",
			Help:      "Metric responses discarded because a newer selection was made.",
		}, []string{"view"}),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.fetches, m.stale} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) outcome(view, outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(view, outcome).Inc()
}

func (m *Metrics) staleResponse(view string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(view).Inc()
}
