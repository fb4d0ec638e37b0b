package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
	"github.com/ericfisherdev/budgetctl/internal/metrics"
)

// DefaultPollInterval is the notification refresh period.
const DefaultPollInterval = 30 * time.Second

var (
	// ErrAlreadyStarted is returned by Start on a store that is already polling.
	ErrAlreadyStarted = errors.New("notification store already started")
	// ErrStopped is returned by Start on a store that has been stopped.
	ErrStopped = errors.New("notification store stopped")
)

// StoreState is the lifecycle phase of a NotificationStore.
type StoreState int

const (
	StateLoading StoreState = iota
	StateReady
	StateStopped
)

func (s StoreState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// NotificationSnapshot is a point-in-time copy of the store's observable state.
type NotificationSnapshot struct {
	State         StoreState
	Notifications []model.Notification
	UnreadCount   int
	LastRefreshed time.Time
}

// NotificationStore caches the signed-in user's notifications, refreshes the
// cache on a fixed period and publishes every change to its subscribers.
//
// A successful refresh replaces the whole cache. When refreshes overlap, only
// the most recently issued one that has completed is applied; an older
// completion arriving later is discarded. Background failures are logged and
// never surfaced.
type NotificationStore struct {
	api      driven.NotificationAPI
	interval time.Duration
	logger   *slog.Logger

	mu            sync.Mutex
	state         StoreState
	items         []model.Notification
	lastRefreshed time.Time
	started       bool
	issued        uint64 // sequence of the latest refresh issued
	applied       uint64 // sequence of the latest refresh applied
	cancel        context.CancelFunc
	done          chan struct{}
	listeners     map[uint64]func(NotificationSnapshot)
	nextListener  uint64
}

// NewNotificationStore creates a store in the Loading state. A non-positive
// interval uses DefaultPollInterval.
func NewNotificationStore(api driven.NotificationAPI, interval time.Duration, logger *slog.Logger) *NotificationStore {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationStore{
		api:       api,
		interval:  interval,
		logger:    logger,
		items:     []model.Notification{},
		listeners: make(map[uint64]func(NotificationSnapshot)),
	}
}

// Start fetches immediately and then every interval until Stop is called or
// ctx is canceled. It returns without waiting for the first fetch.
func (s *NotificationStore) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.run(loopCtx, done)
	return nil
}

func (s *NotificationStore) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped()
			s.logger.Debug("notification polling stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Stop cancels polling and waits for the loop to exit. It is safe to call
// more than once and before Start. It must not be called from a listener.
func (s *NotificationStore) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.markStopped()
}

func (s *NotificationStore) markStopped() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	s.state = StateStopped
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, snap)
}

// Refresh fetches the notification list once and, on success, replaces the
// cache with it. Failures leave the cache as it was.
func (s *NotificationStore) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	items, err := s.api.ListNotifications(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("notification refresh canceled", "error", err)
			return
		}
		metrics.RecordNotificationRefresh(model.KindOf(err).String())
		s.logger.Warn("notification refresh failed",
			"kind", model.KindOf(err).String(),
			"error", err,
		)
		return
	}
	if items == nil {
		items = []model.Notification{}
	}

	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	if seq < s.applied {
		s.mu.Unlock()
		metrics.RecordNotificationRefresh("stale")
		s.logger.Debug("discarded stale notification refresh", "seq", seq)
		return
	}
	s.applied = seq
	s.items = items
	s.state = StateReady
	s.lastRefreshed = time.Now()
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	metrics.RecordNotificationRefresh("ok")
	metrics.SetUnreadNotifications(snap.UnreadCount)
	notify(listeners, snap)
}

// MarkAsRead flips the cached entry with the given id to read, notifies
// subscribers, and then acknowledges it on the server. A server failure is
// logged and the local flag is kept. An unknown id changes nothing locally
// but is still sent.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id int64) {
	s.mu.Lock()
	changed := false
	if s.state != StateStopped {
		for i := range s.items {
			if s.items[i].ID == id {
				if !s.items[i].IsRead {
					s.items[i].IsRead = true
					changed = true
				}
				break
			}
		}
	}
	var (
		snap      NotificationSnapshot
		listeners []func(NotificationSnapshot)
	)
	if changed {
		snap, listeners = s.snapshotLocked(), s.listenersLocked()
	}
	s.mu.Unlock()

	if changed {
		metrics.SetUnreadNotifications(snap.UnreadCount)
		notify(listeners, snap)
	}

	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.logger.Warn("mark notification as read failed",
			"notification_id", id,
			"kind", model.KindOf(err).String(),
			"error", err,
		)
	}
}

// UnreadCount returns the number of cached notifications not yet read.
func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CountUnread(s.items)
}

// Snapshot returns a copy of the current state.
func (s *NotificationStore) Snapshot() NotificationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. Listeners
// run on the goroutine that made the change, outside the store's lock. The
// returned func unsubscribes and may be called more than once.
func (s *NotificationStore) Subscribe(fn func(NotificationSnapshot)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *NotificationStore) snapshotLocked() NotificationSnapshot {
	items := make([]model.Notification, len(s.items))
	copy(items, s.items)
	return NotificationSnapshot{
		State:         s.state,
		Notifications: items,
		UnreadCount:   model.CountUnread(s.items),
		LastRefreshed: s.lastRefreshed,
	}
}

func (s *NotificationStore) listenersLocked() []func(NotificationSnapshot) {
	out := make([]func(NotificationSnapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}
