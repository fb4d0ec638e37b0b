package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// NotificationResponse is the JSON representation of a notification.
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at,omitempty"`
}

// NotificationsResponse is the JSON representation of a store snapshot.
type NotificationsResponse struct {
	State         string                 `json:"state"`
	UnreadCount   int                    `json:"unread_count"`
	LastRefreshed string                 `json:"last_refreshed,omitempty"`
	Notifications []NotificationResponse `json:"notifications"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Time   string `json:"time"`
}

func toNotificationResponse(n model.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:      n.ID,
		Message: n.Message,
		Type:    string(n.Type),
		IsRead:  n.IsRead,
	}
	if !n.CreatedAt.IsZero() {
		resp.CreatedAt = n.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toNotificationsResponse(s application.NotificationSnapshot) NotificationsResponse {
	items := make([]NotificationResponse, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		items = append(items, toNotificationResponse(n))
	}

	resp := NotificationsResponse{
		State:         s.State.String(),
		UnreadCount:   s.UnreadCount,
		Notifications: items,
	}
	if !s.LastRefreshed.IsZero() {
		resp.LastRefreshed = s.LastRefreshed.UTC().Format(time.RFC3339)
	}
	return resp
}
