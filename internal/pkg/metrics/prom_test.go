package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPromMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	assert.NotPanics(t, func() { Register(reg) })

	runsBefore := testutil.ToFloat64(extractRuns.WithLabelValues(OutcomeZip))
	okBefore := testutil.ToFloat64(upstreamRequests.WithLabelValues("200"))
	errBefore := testutil.ToFloat64(upstreamRequests.WithLabelValues("error"))
	bytesBefore := testutil.ToFloat64(uploadBytes)

	RecordRun(OutcomeZip)
	RecordUpstream(200, 150*time.Millisecond, 1024)
	RecordUpstream(0, time.Second, 10)

	assert.Equal(t, runsBefore+1, testutil.ToFloat64(extractRuns.WithLabelValues(OutcomeZip)))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("200")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("error")))
	assert.Equal(t, bytesBefore+1034, testutil.ToFloat64(uploadBytes))
}
