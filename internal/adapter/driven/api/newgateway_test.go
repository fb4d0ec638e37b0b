package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/budgetctl/internal/adapter/driven/api"
	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// notificationBackend serves one notification whose read flag flips on
// mark-as-read. GET responses are marked cacheable for five minutes.
type notificationBackend struct {
	mu           sync.Mutex
	read         bool
	gets         int
	cacheControl []string
}

func (b *notificationBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/notifications":
		b.mu.Lock()
		b.gets++
		b.cacheControl = append(b.cacheControl, r.Header.Get("Cache-Control"))
		read := b.read
		b.mu.Unlock()

		w.Header().Set("Cache-Control", "private, max-age=300")
		writeBody(w, http.StatusOK, fmt.Sprintf(`[{"id":1,"message":"Groceries at 90%%","isRead":%t}]`, read))

	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/notifications/1/mark-as-read":
		b.mu.Lock()
		b.read = true
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)

	default:
		http.NotFound(w, r)
	}
}

func (b *notificationBackend) getCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets
}

// countingHandler serves a cacheable category list and counts hits.
func countingHandler(hits *int, mu *sync.Mutex) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		*hits++
		mu.Unlock()
		w.Header().Set("Cache-Control", "private, max-age=300")
		writeBody(w, http.StatusOK, `[{"id":1,"name":"Rent","type":"EXPENSE"}]`)
	})
}

func newGateway(t *testing.T, serverURL string, cache bool, timeout time.Duration) *api.Gateway {
	t.Helper()
	gw, err := api.NewGateway(api.GatewayConfig{BaseURL: serverURL, Timeout: timeout, Cache: cache}, staticToken("tok"), nil)
	require.NoError(t, err)
	return gw
}

func TestNewGateway_ValidatesBaseURL(t *testing.T) {
	_, err := api.NewGateway(api.GatewayConfig{BaseURL: "ftp://example.com"}, nil, nil)
	assert.Error(t, err)
}

func TestNewGateway_CacheServesFreshResponses(t *testing.T) {
	tests := []struct {
		name     string
		cache    bool
		wantHits int
	}{
		{name: "cache on", cache: true, wantHits: 1},
		{name: "cache off", cache: false, wantHits: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				mu   sync.Mutex
				hits int
			)
			server := httptest.NewServer(countingHandler(&hits, &mu))
			t.Cleanup(server.Close)
			gw := newGateway(t, server.URL, tt.cache, 0)

			for range 2 {
				body, err := gw.Send(context.Background(), http.MethodGet, "/categories", driven.RequestOptions{})
				require.NoError(t, err)
				assert.Contains(t, string(body), "Rent")
			}

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, tt.wantHits, hits)
		})
	}
}

func TestNewGateway_NoCacheReachesServer(t *testing.T) {
	backend := &notificationBackend{}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	gw := newGateway(t, server.URL, true, 0)

	for range 2 {
		_, err := gw.Send(context.Background(), http.MethodGet, "/notifications", driven.RequestOptions{NoCache: true})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, backend.getCount())
	assert.Equal(t, []string{"no-cache", "no-cache"}, backend.cacheControl)
}

func TestNewGateway_RefreshAfterMarkAsReadSeesServerState(t *testing.T) {
	backend := &notificationBackend{}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client := api.NewClient(newGateway(t, server.URL, true, 0))
	store := application.NewNotificationStore(client, time.Hour, nil)
	t.Cleanup(store.Stop)
	ctx := context.Background()

	store.Refresh(ctx)
	require.Equal(t, 1, store.UnreadCount())

	store.MarkAsRead(ctx, 1)
	store.Refresh(ctx)

	snap := store.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.True(t, snap.Notifications[0].IsRead)
	assert.Zero(t, store.UnreadCount())
	assert.Equal(t, 2, backend.getCount())
}

func TestNewGateway_TimeoutIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeBody(w, http.StatusOK, `[]`)
	}))
	t.Cleanup(server.Close)
	gw := newGateway(t, server.URL, false, 50*time.Millisecond)

	_, err := gw.Send(context.Background(), http.MethodGet, "/categories", driven.RequestOptions{})

	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestSend_OversizedResponseIsUnknown(t *testing.T) {
	oversized := `"` + strings.Repeat("a", 8<<20) + `"`
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusOK, oversized)
	}), "")

	body, err := gw.Send(context.Background(), http.MethodGet, "/notifications", driven.RequestOptions{})

	assert.Nil(t, body)
	assert.ErrorIs(t, err, model.ErrUnknown)
	assert.Contains(t, err.Error(), "response too large")
}
