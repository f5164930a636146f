package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fileDuration *prom.HistogramVec
	fileResults  *prom.CounterVec
	items        *prom.CounterVec
	diagnostics  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the extraction metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "thedoc",
			Name:      "file_parse_duration_seconds",
			Help:      "Duration of individual file extraction passes",
			Buckets:   prom.DefBuckets,
		}, []string{"dialect"}),
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "thedoc",
			Name:      "file_results_total",
			Help:      "File extraction outcomes by dialect",
		}, []string{"dialect", "result"}),
		items: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "thedoc",
			Name:      "doc_items_total",
			Help:      "Extracted documentation items by dialect and kind",
		}, []string{"dialect", "kind"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "thedoc",
			Name:      "block_diagnostics_total",
			Help:      "Recoverable block-level parse diagnostics by dialect",
		}, []string{"dialect"}),
	}
	reg.MustRegister(pr.fileDuration, pr.fileResults, pr.items, pr.diagnostics)
	return pr
}

func (pr *PrometheusRecorder) ObserveFileDuration(dialect string, d time.Duration) {
	pr.fileDuration.WithLabelValues(dialect).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncFileResult(dialect string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	pr.fileResults.WithLabelValues(dialect, result).Inc()
}

func (pr *PrometheusRecorder) AddItems(dialect, kind string, n int) {
	if n > 0 {
		pr.items.WithLabelValues(dialect, kind).Add(float64(n))
	}
}

func (pr *PrometheusRecorder) AddDiagnostics(dialect string, n int) {
	if n > 0 {
		pr.diagnostics.WithLabelValues(dialect).Add(float64(n))
	}
}
