// Package metrics exposes Prometheus counters for the auth flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// AuthEvents counts auth flow outcomes by flow name.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "auth",
		Name:      "events_total",
		Help:      "Authentication flow outcomes.",
	}, []string{"flow", "outcome"})

	// RefreshReplays counts presentations of already revoked refresh tokens.
	RefreshReplays = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "auth",
		Name:      "refresh_replays_total",
		Help:      "Revoked refresh tokens presented again.",
	})

	// AccessDenied counts requests rejected by the permission guard.
	AccessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "rbac",
		Name:      "denied_total",
		Help:      "Requests rejected by a permission guard.",
	}, []string{"permission"})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	}, []string{"route"})

	// MailFailures counts outbound mail that could not be handed off.
	MailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "mail",
		Name:      "failures_total",
		Help:      "Outbound mail that failed to send or enqueue.",
	})
)

// Observe records the outcome of one auth flow.
func Observe(flow string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	AuthEvents.WithLabelValues(flow, outcome).Inc()
}
