package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks analysis traffic since process start.
type Metrics struct {
	upstreamCalls      int64
	upstreamErrors     int64
	upstreamLatency    int64 // nanoseconds
	submissions        int64
	missingFile        int64
	inflightRejections int64
}

// MetricsSnapshot is the JSON view served on /metrics.
type MetricsSnapshot struct {
	UpstreamCalls        int64   `json:"upstream_calls"`
	UpstreamErrors       int64   `json:"upstream_errors"`
	AvgUpstreamLatencyMs float64 `json:"avg_upstream_latency_ms"`
	UpstreamErrorRate    float64 `json:"upstream_error_rate_pct"`
	Submissions          int64   `json:"submissions"`
	MissingFile          int64   `json:"missing_file"`
	InflightRejections   int64   `json:"inflight_rejections"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() MetricsSnapshot {
	m := Metrics{
		upstreamCalls:      atomic.LoadInt64(&globalMetrics.upstreamCalls),
		upstreamErrors:     atomic.LoadInt64(&globalMetrics.upstreamErrors),
		upstreamLatency:    atomic.LoadInt64(&globalMetrics.upstreamLatency),
		submissions:        atomic.LoadInt64(&globalMetrics.submissions),
		missingFile:        atomic.LoadInt64(&globalMetrics.missingFile),
		inflightRejections: atomic.LoadInt64(&globalMetrics.inflightRejections),
	}
	return MetricsSnapshot{
		UpstreamCalls:        m.upstreamCalls,
		UpstreamErrors:       m.upstreamErrors,
		AvgUpstreamLatencyMs: m.averageUpstreamLatency(),
		UpstreamErrorRate:    m.upstreamErrorRate(),
		Submissions:          m.submissions,
		MissingFile:          m.missingFile,
		InflightRejections:   m.inflightRejections,
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.upstreamCalls, 0)
	atomic.StoreInt64(&globalMetrics.upstreamErrors, 0)
	atomic.StoreInt64(&globalMetrics.upstreamLatency, 0)
	atomic.StoreInt64(&globalMetrics.submissions, 0)
	atomic.StoreInt64(&globalMetrics.missingFile, 0)
	atomic.StoreInt64(&globalMetrics.inflightRejections, 0)
}

func recordUpstreamCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.upstreamCalls, 1)
	atomic.AddInt64(&globalMetrics.upstreamLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.upstreamErrors, 1)
	}
}

func recordSubmission() {
	atomic.AddInt64(&globalMetrics.submissions, 1)
}

func recordMissingFile() {
	atomic.AddInt64(&globalMetrics.missingFile, 1)
}

func recordInflightRejection() {
	atomic.AddInt64(&globalMetrics.inflightRejections, 1)
}

func (m Metrics) averageUpstreamLatency() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	avgNs := float64(m.upstreamLatency) / float64(m.upstreamCalls)
	return avgNs / 1e6
}

func (m Metrics) upstreamErrorRate() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	return float64(m.upstreamErrors) / float64(m.upstreamCalls) * 100
}
