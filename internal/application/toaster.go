package application

import (
	"sync"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// DefaultToastDuration is how long a toast stays open.
const DefaultToastDuration = 6 * time.Second

// Toaster holds the single transient feedback message. Showing a toast
// replaces the current one and arms an auto-hide timer; a timer armed for an
// older toast never hides a newer one.
type Toaster struct {
	mu        sync.Mutex
	current   model.Toast
	gen       uint64
	timer     *time.Timer
	duration  time.Duration
	listeners map[uint64]func(model.Toast)
	nextID    uint64
}

// NewToaster creates a Toaster. A non-positive duration uses DefaultToastDuration.
func NewToaster(duration time.Duration) *Toaster {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toaster{
		duration:  duration,
		listeners: make(map[uint64]func(model.Toast)),
	}
}

// Show opens a toast with message and severity.
func (t *Toaster) Show(message string, severity model.Severity) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.current = model.Toast{Open: true, Message: message, Severity: severity}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.duration, func() { t.expire(gen) })
	toast, listeners := t.current, t.listenersLocked()
	t.mu.Unlock()

	notify(listeners, toast)
}

// Success and Error are shorthands for the two most common severities.
func (t *Toaster) Success(message string) { t.Show(message, model.SeveritySuccess) }

func (t *Toaster) Error(message string) { t.Show(message, model.SeverityError) }

// Hide closes the current toast.
func (t *Toaster) Hide() {
	t.mu.Lock()
	if !t.current.Open {
		t.mu.Unlock()
		return
	}
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current.Open = false
	toast, listeners := t.current, t.listenersLocked()
	t.mu.Unlock()

	notify(listeners, toast)
}

// Current returns the toast being shown, if any.
func (t *Toaster) Current() model.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Subscribe registers fn for every toast change. The returned func unsubscribes.
func (t *Toaster) Subscribe(fn func(model.Toast)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

func (t *Toaster) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.current.Open {
		t.mu.Unlock()
		return
	}
	t.current.Open = false
	t.timer = nil
	toast, listeners := t.current, t.listenersLocked()
	t.mu.Unlock()

	notify(listeners, toast)
}

func (t *Toaster) listenersLocked() []func(model.Toast) {
	out := make([]func(model.Toast), 0, len(t.listeners))
	for _, fn := range t.listeners {
		out = append(out, fn)
	}
	return out
}

func notify[T any](listeners []func(T), v T) {
	for _, fn := range listeners {
		fn(v)
	}
}
