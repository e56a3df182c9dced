package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the runtime's prometheus collectors.
type Metrics struct {
	Calls    *prometheus.CounterVec // by method and result code
	Duration *prometheus.HistogramVec
	Escrowed prometheus.Counter // units moved into custody
	PaidOut  prometheus.Counter // units released from custody
	Events   *prometheus.CounterVec
}

func newMetrics(namespace string) *Metrics {
	return &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Contract calls by method and result.",
		}, []string{"method", "result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Wall time of a contract call including commit.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"method"}),
		Escrowed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrowed_units_total",
			Help:      "Units debited from players into game custody.",
		}),
		PaidOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paid_out_units_total",
			Help:      "Units credited from game custody to players.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Committed contract events by type.",
		}, []string{"type"}),
	}
}

func (m *Metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Calls, m.Duration, m.Escrowed, m.PaidOut, m.Events} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observeCommit records the ledger flows and events of a committed call.
func (m *Metrics) observeCommit(c *txnChain) {
	for _, f := range c.flows {
		if f.debit {
			m.Escrowed.Add(float64(f.amount))
		} else {
			m.PaidOut.Add(float64(f.amount))
		}
	}
	for _, ev := range c.events {
		m.Events.WithLabelValues(ev.Type).Inc()
	}
}
