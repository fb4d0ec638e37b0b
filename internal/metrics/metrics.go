// Package metrics holds the Prometheus collectors for the gateway and the
// notification store.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	gatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "budgetctl",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of API calls issued through the gateway.",
		},
		[]string{"method", "path", "outcome"},
	)

	gatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "budgetctl",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of API calls issued through the gateway.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "path"},
	)

	notificationRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "budgetctl",
			Subsystem: "notifications",
			Name:      "refreshes_total",
			Help:      "Total number of notification refreshes by outcome.",
		},
		[]string{"outcome"},
	)

	notificationsUnread = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "budgetctl",
			Subsystem: "notifications",
			Name:      "unread",
			Help:      "Unread notifications in the local cache.",
		},
	)
)

func init() {
	Registry.MustRegister(
		gatewayRequests,
		gatewayDuration,
		notificationRefreshes,
		notificationsUnread,
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordGatewayRequest records one gateway call. outcome is "ok" or the error kind name.
func RecordGatewayRequest(method, path, outcome string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	p := canonicalPath(path)
	gatewayRequests.WithLabelValues(strings.ToUpper(method), p, outcome).Inc()
	gatewayDuration.WithLabelValues(strings.ToUpper(method), p).Observe(duration.Seconds())
}

// RecordNotificationRefresh counts one completed refresh. outcome is "ok",
// "stale" or the error kind name; canceled refreshes are not counted.
func RecordNotificationRefresh(outcome string) {
	notificationRefreshes.WithLabelValues(outcome).Inc()
}

// SetUnreadNotifications publishes the current unread count.
func SetUnreadNotifications(n int) {
	notificationsUnread.Set(float64(n))
}

// canonicalPath collapses numeric path segments so resource ids do not explode
// label cardinality: /notifications/42/mark-as-read -> /notifications/:id/mark-as-read.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
