package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dto "github.com/prometheus/client_model/go"
)

var (
	// ChecksTotal counts compatibility checks by verdict and resolution source.
	// Verdict is one of: compatible, incompatible, version_mismatch, deprecated.
	// Source is one of: disabled, ignored, cache, remote, rules, unknown.
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nugetcompat_checks_total",
			Help: "Total number of compatibility checks by verdict and source",
		},
		[]string{"verdict", "source"},
	)

	// CheckDuration tracks compatibility check duration in seconds.
	CheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nugetcompat_check_duration_seconds",
			Help:    "Compatibility check duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
		},
		[]string{"source"},
	)

	// CacheHitsTotal counts verdict cache hits.
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nugetcompat_cache_hits_total",
			Help: "Total number of verdict cache hits",
		},
	)

	// CacheMissesTotal counts verdict cache misses.
	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nugetcompat_cache_misses_total",
			Help: "Total number of verdict cache misses",
		},
	)

	// RegistryRequestsTotal counts registry lookups by endpoint and outcome.
	// Endpoint is versions or metadata; outcome is ok or unavailable.
	RegistryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nugetcompat_registry_requests_total",
			Help: "Total number of registry lookups by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, status code, and host.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nugetcompat_http_requests_total",
			Help: "Total number of HTTP requests by method and status",
		},
		[]string{"method", "status_code", "host"},
	)

	// HTTPRequestDuration tracks HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nugetcompat_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to 16s
		},
		[]string{"method", "host"},
	)

	// UpgradeScansTotal counts framework upgrade scans by outcome.
	// Outcome is suggested or none.
	UpgradeScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nugetcompat_upgrade_scans_total",
			Help: "Total number of framework upgrade scans by outcome",
		},
		[]string{"outcome"},
	)
)

// GetCounterValue reads the current value of a counter, for tests.
func GetCounterValue(counter prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
