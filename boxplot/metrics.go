package boxplot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects calculator counters. A nil *Metrics records nothing.
type Metrics struct {
	traces    *prometheus.CounterVec
	positions *prometheus.CounterVec
	warnings  *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics registers the calculator collectors on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		traces: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxstat_traces_total",
			Help: "Traces calculated by input mode",
		}, []string{"mode"}),

		positions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxstat_positions_total",
			Help: "Positions by outcome (computed or dropped)",
		}, []string{"outcome"}),

		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxstat_warnings_total",
			Help: "Recovered input problems by kind",
		}, []string{"kind"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "boxstat_calc_duration_seconds",
			Help:    "Per-trace calculation duration",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

func (m *Metrics) observe(res *Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.traces.WithLabelValues(string(res.Mode)).Inc()
	m.positions.WithLabelValues("computed").Add(float64(len(res.Records)))
	m.positions.WithLabelValues("dropped").Add(float64(res.Dropped))
	for _, w := range res.Warnings {
		m.warnings.WithLabelValues(string(w.Kind)).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}
