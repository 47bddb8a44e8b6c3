package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadly_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// RelationshipToggles counts like/follow toggles by kind and outcome.
	RelationshipToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadly_relationship_toggles_total",
		Help: "Total number of relationship toggles by kind and outcome",
	}, []string{"kind", "outcome"})

	// SessionRejections counts requests turned away by the session gate.
	SessionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadly_session_rejections_total",
		Help: "Total number of requests rejected by the session gate",
	}, []string{"reason"})

	// CacheLookups counts post cache hits and misses.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadly_cache_lookups_total",
		Help: "Total number of cache lookups by result",
	}, []string{"result"})
)
