package handler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks request counts and latency for the health endpoint.
type Metrics struct {
	totalRequests      atomic.Uint64
	successfulRequests atomic.Uint64
	failedRequests     atomic.Uint64
	activeRequests     atomic.Int32

	mutex        sync.Mutex
	totalLatency time.Duration
	startTime    time.Time
}

type MetricsSnapshot struct {
	TotalRequests      uint64  `json:"totalRequests"`
	SuccessfulRequests uint64  `json:"successfulRequests"`
	FailedRequests     uint64  `json:"failedRequests"`
	AvgLatencyMs       int64   `json:"avgLatencyMs"`
	ActiveRequests     int32   `json:"activeRequests"`
	UptimeSeconds      float64 `json:"uptimeSeconds"`
	RequestsPerSecond  float64 `json:"requestsPerSecond"`
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) begin() {
	m.totalRequests.Add(1)
	m.activeRequests.Add(1)
}

// end records a finished request; statuses of 400 and above count as failures.
func (m *Metrics) end(status int, elapsed time.Duration) {
	m.activeRequests.Add(-1)
	if status >= 400 {
		m.failedRequests.Add(1)
		return
	}
	m.successfulRequests.Add(1)
	m.mutex.Lock()
	m.totalLatency += elapsed
	m.mutex.Unlock()
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mutex.Lock()
	latency := m.totalLatency
	m.mutex.Unlock()

	snap := MetricsSnapshot{
		TotalRequests:      m.totalRequests.Load(),
		SuccessfulRequests: m.successfulRequests.Load(),
		FailedRequests:     m.failedRequests.Load(),
		ActiveRequests:     m.activeRequests.Load(),
		UptimeSeconds:      time.Since(m.startTime).Seconds(),
	}
	if snap.SuccessfulRequests > 0 {
		snap.AvgLatencyMs = (latency / time.Duration(snap.SuccessfulRequests)).Milliseconds()
	}
	if snap.UptimeSeconds > 0 {
		snap.RequestsPerSecond = float64(snap.TotalRequests) / snap.UptimeSeconds
	}
	return snap
}
