package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements the domain Metrics interface on top of prometheus.
type Recorder struct {
	syncTotal    *prometheus.CounterVec
	syncRows     *prometheus.GaugeVec
	queryTotal   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	llmCalls     *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	opLatency    *prometheus.HistogramVec
}

// NewRecorder creates and registers the application metric set.
func NewRecorder() *Recorder {
	r := &Recorder{
		syncTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_syncs_total",
				Help: "Completed sheet syncs by source",
			},
			[]string{"source"},
		),
		syncRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradelens_sync_rows",
				Help: "Row count from the most recent sync per source",
			},
			[]string{"source"},
		),
		queryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_queries_total",
				Help: "Signal queries served by endpoint",
			},
			[]string{"endpoint"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_cache_lookups_total",
				Help: "Cache lookups by kind and outcome",
			},
			[]string{"kind", "hit"},
		),
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_llm_calls_total",
				Help: "LLM completion calls by outcome",
			},
			[]string{"ok"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_errors_total",
				Help: "Application errors by kind",
			},
			[]string{"kind"},
		),
		opLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradelens_operation_duration_seconds",
				Help:    "Duration of named operations",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"op"},
		),
	}

	prometheus.MustRegister(
		r.syncTotal,
		r.syncRows,
		r.queryTotal,
		r.cacheLookups,
		r.llmCalls,
		r.errorsTotal,
		r.opLatency,
	)
	return r
}

func (r *Recorder) RecordSync(source string, rows int) {
	r.syncTotal.WithLabelValues(source).Inc()
	r.syncRows.WithLabelValues(source).Set(float64(rows))
}

func (r *Recorder) RecordQuery(endpoint string) {
	r.queryTotal.WithLabelValues(endpoint).Inc()
}

func (r *Recorder) RecordCacheHit(kind string, hit bool) {
	r.cacheLookups.WithLabelValues(kind, strconv.FormatBool(hit)).Inc()
}

func (r *Recorder) RecordLLMCall(ok bool) {
	r.llmCalls.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.opLatency.WithLabelValues(op).Observe(seconds)
}
