// Package httphandler serves the notification store to other local front-ends
// as a small JSON API on a loopback address.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/metrics"
)

// NotificationService is the subset of the notification store the bridge uses.
type NotificationService interface {
	Snapshot() application.NotificationSnapshot
	Refresh(ctx context.Context)
	MarkAsRead(ctx context.Context, id int64)
}

// Handler is the HTTP driving adapter for the notification bridge.
type Handler struct {
	notifications NotificationService
	logger        *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(notifications NotificationService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{notifications: notifications, logger: logger}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging, loopback and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/notifications", h.ListNotifications)
	mux.HandleFunc("POST /api/v1/notifications/refresh", h.RefreshNotifications)
	mux.HandleFunc("POST /api/v1/notifications/{id}/mark-as-read", h.MarkAsRead)
	mux.Handle("GET /metrics", metrics.Handler())

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loopbackMiddleware(wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListNotifications returns the store's current snapshot.
func (h *Handler) ListNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toNotificationsResponse(h.notifications.Snapshot()))
}

// RefreshNotifications fetches from the backend now and returns the resulting
// snapshot. A failed fetch still answers 200 with the previous snapshot.
func (h *Handler) RefreshNotifications(w http.ResponseWriter, r *http.Request) {
	h.notifications.Refresh(r.Context())
	writeJSON(w, http.StatusOK, toNotificationsResponse(h.notifications.Snapshot()))
}

// MarkAsRead marks one notification read and returns the updated snapshot.
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	h.notifications.MarkAsRead(r.Context(), id)
	writeJSON(w, http.StatusOK, toNotificationsResponse(h.notifications.Snapshot()))
}

// Health reports liveness and the store's lifecycle state.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Store:  h.notifications.Snapshot().State.String(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
