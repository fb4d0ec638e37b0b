package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/notifications", "/notifications"},
		{"/notifications/42/mark-as-read", "/notifications/:id/mark-as-read"},
		{"categories/7", "/categories/:id"},
		{"/transactions/dashboard", "/transactions/dashboard"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalPath(tt.in), "input %q", tt.in)
	}
}

func TestRecordGatewayRequest_CountsByCanonicalPath(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequests.WithLabelValues("POST", "/notifications/:id/mark-as-read", "ok"))

	RecordGatewayRequest("post", "/notifications/1/mark-as-read", "ok", 0)
	RecordGatewayRequest("POST", "/notifications/2/mark-as-read", "ok", 3*time.Millisecond)

	after := testutil.ToFloat64(gatewayRequests.WithLabelValues("POST", "/notifications/:id/mark-as-read", "ok"))
	assert.Equal(t, before+2, after)
}

func TestSetUnreadNotifications(t *testing.T) {
	SetUnreadNotifications(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(notificationsUnread))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordNotificationRefresh("ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "budgetctl_notifications_refreshes_total")
}
