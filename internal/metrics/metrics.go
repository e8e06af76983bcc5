// Package metrics wraps the prometheus counters/gauges and hdrhistogram
// latency recorder shared by the writer and query executor: thread
// pool occupancy, segment commit counts, and query execution latency.
// This is ambient observability, not the distributed coordination the
// core's Non-goals exclude.
//
// Grounded on dreamsxin-wal's metrics.go (promauto.With(reg) registration
// pattern, CounterVec by label, Gauge for point-in-time state) and its
// benchmark harness's use of hdrhistogram for latency recording.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder bundles every metric ironsearch's writer and query runtime
// emit against a single prometheus registry.
type Recorder struct {
	SegmentsCommitted prometheus.Counter
	DocsIndexed        prometheus.Counter
	ActiveSegments     prometheus.Gauge
	PoolActive         prometheus.Gauge
	PoolThreads        prometheus.Gauge
	QueriesExecuted    *prometheus.CounterVec

	mu        sync.Mutex
	latencies *hdrhistogram.Histogram
}

// New registers and returns a Recorder bound to reg. Passing
// prometheus.NewRegistry() isolates metrics per test; passing
// prometheus.DefaultRegisterer wires them into a process-wide
// /metrics endpoint.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		SegmentsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ironsearch_segments_committed_total",
			Help: "Number of segments committed by the index writer.",
		}),
		DocsIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ironsearch_docs_indexed_total",
			Help: "Number of documents written into committed segments.",
		}),
		ActiveSegments: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ironsearch_active_segments",
			Help: "Number of segments in the current committed generation.",
		}),
		PoolActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ironsearch_pool_tasks_active",
			Help: "Number of thread-pool tasks currently executing.",
		}),
		PoolThreads: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ironsearch_pool_threads",
			Help: "Number of live thread-pool worker goroutines.",
		}),
		QueriesExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ironsearch_queries_executed_total",
			Help: "Number of prepared-query executions, by filter kind.",
		}, []string{"kind"}),
		latencies: hdrhistogram.New(1, int64(10*time.Second/time.Microsecond), 3),
	}
}

// RecordQueryLatency records how long one query run took, in
// microseconds, and increments the per-kind execution counter.
// query.RunTimed reports the duration of a whole Run across all
// sub-readers.
func (r *Recorder) RecordQueryLatency(kind string, d time.Duration) {
	r.QueriesExecuted.WithLabelValues(kind).Inc()
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.latencies.RecordValue(d.Microseconds())
}

// LatencySnapshot returns the current p50/p95/p99 query latency in
// microseconds.
func (r *Recorder) LatencySnapshot() (p50, p95, p99 int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latencies.ValueAtQuantile(50), r.latencies.ValueAtQuantile(95), r.latencies.ValueAtQuantile(99)
}
