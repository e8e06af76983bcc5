package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/internal/metrics"
)

func TestNewRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	require.NotNil(t, rec)

	rec.SegmentsCommitted.Inc()
	rec.DocsIndexed.Add(5)
	rec.ActiveSegments.Set(2)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRecordQueryLatencyUpdatesSnapshot(t *testing.T) {
	rec := metrics.New(prometheus.NewRegistry())

	rec.RecordQueryLatency("term", 5*time.Millisecond)
	rec.RecordQueryLatency("term", 15*time.Millisecond)

	p50, p95, p99 := rec.LatencySnapshot()
	assert.Greater(t, p50, int64(0))
	assert.GreaterOrEqual(t, p95, p50)
	assert.GreaterOrEqual(t, p99, p95)
}
