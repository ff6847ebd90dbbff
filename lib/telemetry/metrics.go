// Package telemetry holds the counters describing how reads and writes are
// routed between the shared cache and the durable store.
package telemetry

import (
	"github.com/VictoriaMetrics/metrics"
	"io"
)

// Set is the metric set all dEnv counters are registered in.
var Set = metrics.NewSet()

var (
	CacheHits   = Set.NewCounter("denv_cache_hits_total")
	CacheMisses = Set.NewCounter("denv_cache_misses_total")
	CacheErrors = Set.NewCounter("denv_cache_errors_total")
	FileReads   = Set.NewCounter("denv_file_reads_total")
	FileWrites  = Set.NewCounter("denv_file_writes_total")
)

// Reasons for a dropped write.
const (
	ReasonUnchanged     = "unchanged"      // value equals the current read
	ReasonFileUnchanged = "file_unchanged" // file already holds the value
	ReasonPolicy        = "policy"         // suppression policy of the durable store
)

// WriteSuppressed counts a dropped write for the given reason.
func WriteSuppressed(reason string) {
	Set.GetOrCreateCounter(`denv_writes_suppressed_total{reason="` + reason + `"}`).Inc()
}

// WritePrometheus writes all dEnv metrics in Prometheus text format.
func WritePrometheus(w io.Writer) {
	Set.WritePrometheus(w)
}
