package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

var (
	upstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aura_upstream_call_duration_seconds",
			Help:    "LLM provider call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
		},
		[]string{"provider", "operation", "outcome"},
	)

	outcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_requests_total",
			Help: "Analysis and section chat requests by result kind",
		},
		[]string{"operation", "kind"},
	)
)

func recordUpstreamCall(provider, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamLatency.WithLabelValues(provider, operation, outcome).Observe(duration.Seconds())
}

func recordOutcome(operation string, err error) {
	kind := "ok"
	if err != nil {
		kind = string(domain.KindOf(err))
	}
	outcomes.WithLabelValues(operation, kind).Inc()
}
