package application_test

import (
	"context"
	"sync"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// --- Mock implementations ---

type mockNotificationAPI struct {
	mu        sync.Mutex
	list      func(ctx context.Context) ([]model.Notification, error)
	markRead  func(ctx context.Context, id int64) error
	listCalls int
	marked    []int64
}

func (m *mockNotificationAPI) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	m.mu.Lock()
	m.listCalls++
	list := m.list
	m.mu.Unlock()

	if list == nil {
		return []model.Notification{}, nil
	}
	return list(ctx)
}

func (m *mockNotificationAPI) MarkNotificationRead(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.marked = append(m.marked, id)
	markRead := m.markRead
	m.mu.Unlock()

	if markRead == nil {
		return nil
	}
	return markRead(ctx, id)
}

func (m *mockNotificationAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *mockNotificationAPI) Marked() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.marked...)
}

type mockAuthAPI struct {
	login         func(ctx context.Context, email, password string) (string, error)
	register      func(ctx context.Context, fullName, email, password string) (string, error)
	registerCalls int
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	return m.login(ctx, email, password)
}

func (m *mockAuthAPI) Register(ctx context.Context, fullName, email, password string) (string, error) {
	m.registerCalls++
	return m.register(ctx, fullName, email, password)
}

type mockCredentialStore struct {
	mu        sync.Mutex
	values    map[string]string
	getErr    error
	setErr    error
	deleteErr error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{values: make(map[string]string)}
}

func (m *mockCredentialStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[key], nil
}

func (m *mockCredentialStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockCredentialStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

// notifications builds an unread-by-default list with the given ids.
func notifications(ids ...int64) []model.Notification {
	out := make([]model.Notification, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Notification{ID: id, Message: "budget alert"})
	}
	return out
}
