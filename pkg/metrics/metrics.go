package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "queries_total", Help: "Number of directory queries by endpoint."},
		[]string{"endpoint"},
	)
	QueryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "query_errors_total", Help: "Number of failed directory queries by endpoint."},
		[]string{"endpoint"},
	)
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "cache_hits_total", Help: "Number of listing cache hits by key kind."},
		[]string{"kind"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "cache_misses_total", Help: "Number of listing cache misses by key kind."},
		[]string{"kind"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "halalfood", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(QueriesTotal)
	reg.MustRegister(QueryErrors)
	reg.MustRegister(CacheHits)
	reg.MustRegister(CacheMisses)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
