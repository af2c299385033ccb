// Package metrics exposes Prometheus metrics for the masking pipeline:
// messages processed, redactions per pattern kind, masking latency and
// downstream sink failures.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codeready-toolchain/logshield/pkg/masking"
)

const (
	namespace = "logshield"

	// OutcomeMasked labels messages that had at least one redaction.
	OutcomeMasked = "masked"
	// OutcomeClean labels messages that passed through unchanged.
	OutcomeClean = "clean"
)

// MaskLatencyBuckets are sized for in-process regex work (in seconds).
var MaskLatencyBuckets = []float64{
	0.000005, 0.00001, 0.000025, 0.00005, 0.0001,
	0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05,
}

var (
	// MessagesTotal counts messages passed through the masking logger.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Total number of log messages processed by the masking logger",
		},
		[]string{"outcome"},
	)

	// RedactionsTotal counts applied replacements by pattern kind.
	RedactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redactions_total",
			Help:      "Total number of sensitive spans replaced, by pattern kind",
		},
		[]string{"kind"},
	)

	// MaskDuration tracks time spent masking a single message.
	MaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mask_duration_seconds",
			Help:      "Time spent masking a single log message in seconds",
			Buckets:   MaskLatencyBuckets,
		},
	)

	// SinkErrorsTotal counts entries a downstream sink failed to record.
	SinkErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Total number of log entries a sink failed to record",
		},
		[]string{"sink"},
	)
)

// RecordMasking records one masked message.
func RecordMasking(result masking.Result, elapsed time.Duration) {
	MaskDuration.Observe(elapsed.Seconds())
	if !result.Redacted() {
		MessagesTotal.WithLabelValues(OutcomeClean).Inc()
		return
	}
	MessagesTotal.WithLabelValues(OutcomeMasked).Inc()
	for kind, n := range result.Plan.CountByKind() {
		RedactionsTotal.WithLabelValues(string(kind)).Add(float64(n))
	}
}

// RecordSinkError records a failed write to the named sink.
func RecordSinkError(sink string) {
	SinkErrorsTotal.WithLabelValues(sink).Inc()
}
