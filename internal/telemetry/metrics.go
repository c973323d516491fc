package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ScanCycles counts completed scan cycles
	ScanCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "airsentry",
			Name:      "scan_cycles_total",
			Help:      "Total number of completed scan cycles",
		},
	)

	// CycleFailures counts cycles aborted because acquisition failed
	CycleFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airsentry",
			Name:      "scan_cycle_failures_total",
			Help:      "Total number of scan cycles aborted by acquisition failures",
		},
		[]string{"phase"},
	)

	// FindingsEmitted counts threat findings by type and severity
	FindingsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airsentry",
			Name:      "findings_total",
			Help:      "Total number of threat findings emitted",
		},
		[]string{"type", "severity"},
	)

	// NetworksObserved tracks the network count of the latest snapshot
	NetworksObserved = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "airsentry",
			Name:      "networks_observed",
			Help:      "Number of networks in the most recent snapshot",
		},
	)

	// CycleDuration observes full cycle wall time
	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "airsentry",
			Name:      "scan_cycle_duration_seconds",
			Help:      "Wall time of a full scan/analyze/publish cycle",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(ScanCycles)
		prometheus.DefaultRegisterer.Register(CycleFailures)
		prometheus.DefaultRegisterer.Register(FindingsEmitted)
		prometheus.DefaultRegisterer.Register(NetworksObserved)
		prometheus.DefaultRegisterer.Register(CycleDuration)
	})
}
