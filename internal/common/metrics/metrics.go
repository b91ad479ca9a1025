package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type Metrics interface {
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetDecisionPrometheus() *DecisionPrometheusMetrics
	// WriteTextfile dumps every registered metric in exposition format to
	// path, for the node-exporter textfile collector.
	WriteTextfile(path string) error
}

type metrics struct {
	reg               *prometheus.Registry
	httpClientMetrics *HTTPClientPrometheusMetrics
	decisionMetrics   *DecisionPrometheusMetrics
}

func New() Metrics {
	reg := prometheus.NewRegistry()
	return &metrics{
		reg:               reg,
		httpClientMetrics: newHTTPClientPrometheusMetrics(reg),
		decisionMetrics:   newDecisionPrometheusMetrics(reg),
	}
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetDecisionPrometheus() *DecisionPrometheusMetrics {
	return m.decisionMetrics
}

// WriteTextfile goes through a temp file and a rename so the collector never
// reads a half-written file.
func (m *metrics) WriteTextfile(path string) error {
	families, err := m.reg.Gather()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
