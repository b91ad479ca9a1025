package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type DecisionPrometheusMetrics struct {
	decisions    *prometheus.CounterVec
	savedAmounts prometheus.Counter
}

func newDecisionPrometheusMetrics(reg prometheus.Registerer) *DecisionPrometheusMetrics {
	mtc := &DecisionPrometheusMetrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autosave_decisions_total",
				Help: "Number of autosave decisions by outcome",
			},
			[]string{"outcome"},
		),
		savedAmounts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "autosave_transferred_amount_total",
				Help: "Total amount moved to the savings account",
			},
		),
	}

	reg.MustRegister(mtc.decisions)
	reg.MustRegister(mtc.savedAmounts)

	return mtc
}

func (m *DecisionPrometheusMetrics) Record(outcome string, delta decimal.Decimal) {
	if m == nil {
		return
	}

	m.decisions.WithLabelValues(outcome).Inc()
	if amount, _ := delta.Float64(); amount > 0 {
		m.savedAmounts.Add(amount)
	}
}
