// Package tui is a Bubble Tea view over the notification store: a live list
// with an unread badge and a toast line.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// NotificationService is the store surface the view drives.
type NotificationService interface {
	Snapshot() application.NotificationSnapshot
	Refresh(ctx context.Context)
	MarkAsRead(ctx context.Context, id int64)
	Subscribe(fn func(application.NotificationSnapshot)) func()
}

// Toaster is the toast surface the view drives.
type Toaster interface {
	Show(message string, severity model.Severity)
	Current() model.Toast
	Subscribe(fn func(model.Toast)) func()
}

// updateMsg carries fresh state after the store or toaster changed.
type updateMsg struct {
	snap  application.NotificationSnapshot
	toast model.Toast
}

// markedMsg reports that a mark-as-read round trip finished.
type markedMsg struct {
	id int64
}

// feed turns store and toaster callbacks into a wake-up signal. The signal
// channel holds at most one pending wake-up; the reader always pulls the
// latest state, so no change is lost when signals coalesce.
type feed struct {
	signal      chan struct{}
	unsubscribe []func()
}

func (f *feed) wake() {
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	store   NotificationService
	toaster Toaster
	feed    *feed
	keys    KeyMap

	snap   application.NotificationSnapshot
	toast  model.Toast
	cursor int
	seen   map[int64]bool
	loaded bool
	width  int
}

// New creates the view and subscribes it to store and toaster. Call Close
// when the program exits.
func New(ctx context.Context, store NotificationService, toaster Toaster) Model {
	f := &feed{signal: make(chan struct{}, 1)}
	f.unsubscribe = append(f.unsubscribe,
		store.Subscribe(func(application.NotificationSnapshot) { f.wake() }),
		toaster.Subscribe(func(model.Toast) { f.wake() }),
	)

	m := Model{
		ctx:     ctx,
		store:   store,
		toaster: toaster,
		feed:    f,
		keys:    DefaultKeyMap(),
		seen:    make(map[int64]bool),
	}
	m.apply(store.Snapshot())
	m.toast = toaster.Current()
	return m
}

// Close detaches the view from the store and toaster.
func (m Model) Close() {
	for _, unsubscribe := range m.feed.unsubscribe {
		unsubscribe()
	}
}

// Init starts listening for state changes.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.feed.signal:
			return updateMsg{snap: m.store.Snapshot(), toast: m.toaster.Current()}
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case updateMsg:
		m.apply(msg.snap)
		m.toast = msg.toast
		return m, m.waitForUpdate()

	case markedMsg:
		m.toaster.Show("Marked as read", model.SeveritySuccess)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.snap.Notifications)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.MarkRead):
			if n, ok := m.selected(); ok && !n.IsRead {
				return m, m.markRead(n.ID)
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m Model) markRead(id int64) tea.Cmd {
	return func() tea.Msg {
		m.store.MarkAsRead(m.ctx, id)
		return markedMsg{id: id}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		m.store.Refresh(m.ctx)
		return nil
	}
}

// apply takes a snapshot and announces notifications that were not in any
// earlier snapshot. The first loaded list is not announced.
func (m *Model) apply(snap application.NotificationSnapshot) {
	m.snap = snap
	if m.cursor >= len(snap.Notifications) {
		m.cursor = max(len(snap.Notifications)-1, 0)
	}
	if snap.State != application.StateReady {
		return
	}

	fresh := 0
	for _, n := range snap.Notifications {
		if !m.seen[n.ID] && !n.IsRead && m.loaded {
			fresh++
		}
		m.seen[n.ID] = true
	}
	m.loaded = true

	switch {
	case fresh == 1:
		m.toaster.Show("1 new notification", model.SeverityWarning)
	case fresh > 1:
		m.toaster.Show(fmt.Sprintf("%d new notifications", fresh), model.SeverityWarning)
	}
}

func (m Model) selected() (model.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Notifications) {
		return model.Notification{}, false
	}
	return m.snap.Notifications[m.cursor], true
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Notifications"))
	if m.snap.UnreadCount > 0 {
		b.WriteString(" ")
		b.WriteString(badgeStyle.Render(fmt.Sprintf("%d unread", m.snap.UnreadCount)))
	}
	b.WriteString("\n\n")

	switch {
	case m.snap.State == application.StateLoading:
		b.WriteString(dimStyle.Render("Loading notifications..."))
		b.WriteString("\n")
	case len(m.snap.Notifications) == 0:
		b.WriteString(dimStyle.Render("No notifications."))
		b.WriteString("\n")
	default:
		for i, n := range m.snap.Notifications {
			b.WriteString(m.renderItem(i, n))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.toast.Open {
		b.WriteString(toastStyle(m.toast.Severity).Render(m.toast.Message))
		b.WriteString("\n")
	}
	if !m.snap.LastRefreshed.IsZero() {
		b.WriteString(dimStyle.Render("updated " + m.snap.LastRefreshed.Format("15:04:05")))
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) renderItem(i int, n model.Notification) string {
	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}

	line := n.Message
	if !n.CreatedAt.IsZero() {
		line += "  " + n.CreatedAt.Local().Format("2006-01-02 15:04")
	}

	if n.IsRead {
		return pointer + readStyle.Render("  "+line)
	}
	return pointer + unreadStyle.Render("• "+line)
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, kb := range m.keys.bindings() {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}

// Run shows the view until the user quits or ctx is canceled.
func Run(ctx context.Context, store NotificationService, toaster Toaster) error {
	m := New(ctx, store, toaster)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running notification view: %w", err)
	}
	return nil
}
