package sink

import (
	"log/slog"
	"os"

	"github.com/codeready-toolchain/logshield/pkg/metrics"
)

// fallback receives sink failures. It writes straight to stderr so that a
// failing sink is never asked to report its own failure.
var fallback = slog.New(slog.NewTextHandler(os.Stderr, nil))

// reportFailure counts and reports an entry a sink failed to record.
// The entry itself is not included: its message is never needed to
// diagnose the failure.
func reportFailure(sinkName, category string, err error) {
	metrics.RecordSinkError(sinkName)
	fallback.Error("Failed to record log entry",
		"sink", sinkName,
		"category", category,
		"error", err)
}
