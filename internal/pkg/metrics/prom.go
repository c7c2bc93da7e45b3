package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	extractRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mineru_extract_runs_total",
			Help: "Number of extract_content invocations",
		},
		[]string{"outcome"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mineru_upstream_requests_total",
			Help: "Requests sent to the MinerU file_parse endpoint",
		},
		[]string{"status"},
	)

	upstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mineru_upstream_request_duration_seconds",
			Help:    "Duration of MinerU file_parse calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	uploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mineru_upload_bytes_total",
			Help: "Document bytes forwarded to MinerU",
		},
	)
)

// Register adds the collectors to reg. Registering twice on the same
// registry is ignored.
func Register(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{extractRuns, upstreamRequests, upstreamDuration, uploadBytes} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}

// Outcome labels for RecordRun.
const (
	OutcomeZip      = "zip"
	OutcomeJSON     = "json"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

func RecordRun(outcome string) {
	extractRuns.WithLabelValues(outcome).Inc()
}

// RecordUpstream records one file_parse call. status is 0 when no response
// was received.
func RecordUpstream(status int, d time.Duration, sent int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(label).Inc()
	upstreamDuration.Observe(d.Seconds())
	uploadBytes.Add(float64(sent))
}
