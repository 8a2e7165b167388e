package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hibp_requests_total",
			Help: "no. of outbound API requests",
		},
		[]string{"endpoint", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hibp_request_duration_seconds",
			Help:    "outbound API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hibp_rate_limit_hits_total",
			Help: "no. of 429 responses from the API",
		},
		[]string{"endpoint"},
	)
	RangeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hibp_range_cache_hits_total",
		Help: "no. of password range cache hits",
	})
	RangeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hibp_range_cache_misses_total",
		Help: "no. of password range cache misses",
	})
)
