package utils

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time

	requests  prometheus.Counter
	errors    prometheus.Counter
	latencies *prometheus.HistogramVec
}

// maxSamplesPerOperation bounds the in-memory latency history per operation.
const maxSamplesPerOperation = 1024

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "greenpatch",
			Name:      "requests_total",
			Help:      "Requests sent to the store actors.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "greenpatch",
			Name:      "errors_total",
			Help:      "Store requests that failed or timed out.",
		}),
		latencies: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "greenpatch",
			Name:      "operation_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"operation"}),
	}
}

// Register adds the collector's Prometheus series to reg.
func (mc *MetricsCollector) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{mc.requests, mc.errors, mc.latencies} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
	mc.requests.Inc()
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
	mc.errors.Inc()
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	samples := append(mc.operationTimes[operationName], duration.Nanoseconds())
	if len(samples) > maxSamplesPerOperation {
		samples = samples[len(samples)-maxSamplesPerOperation:]
	}
	mc.operationTimes[operationName] = samples
	mc.latencies.WithLabelValues(operationName).Observe(duration.Seconds())
}

// MetricsSnapshot is a point-in-time summary for the health endpoint.
type MetricsSnapshot struct {
	Requests      uint64                   `json:"requests"`
	Errors        uint64                   `json:"errors"`
	Uptime        string                   `json:"uptime"`
	AvgLatencies  map[string]time.Duration `json:"avgLatencyNanos"`
	OperationRuns map[string]int           `json:"operationRuns"`
}

func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	snap := MetricsSnapshot{
		Requests:      mc.requestCount,
		Errors:        mc.errorCount,
		Uptime:        time.Since(mc.systemStartTime).Round(time.Second).String(),
		AvgLatencies:  make(map[string]time.Duration, len(mc.operationTimes)),
		OperationRuns: make(map[string]int, len(mc.operationTimes)),
	}
	for op, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total int64
		for _, s := range samples {
			total += s
		}
		snap.AvgLatencies[op] = time.Duration(total / int64(len(samples)))
		snap.OperationRuns[op] = len(samples)
	}
	return snap
}
