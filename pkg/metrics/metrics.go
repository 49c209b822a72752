package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_attempts_total",
		Help: "Outbound notification attempts by channel and outcome",
	}, []string{"channel", "outcome"})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Notifications finally delivered (or logged in no-op mode) by template",
	}, []string{"template", "mode"})

	NotificationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Notifications that failed after all attempts",
	}, []string{"template", "reason"})

	CourierCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_calls_total",
		Help: "Courier API calls by provider, operation and outcome",
	}, []string{"provider", "operation", "outcome"})

	CourierCallLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courier_call_latency_seconds",
		Help:    "Latency of courier API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "operation"})

	RecoveryEmailsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_emails_sent_total",
		Help: "Abandoned cart recovery emails sent",
	})

	RecoveryCartsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_carts_expired_total",
		Help: "Abandoned carts transitioned to expired",
	})

	RecoverySweepErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_sweep_errors_total",
		Help: "Errors recorded during abandoned cart sweeps",
	})
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
