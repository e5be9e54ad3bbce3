package session

import (
	"sync"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Notification is the single user-facing message of an event.
type Notification struct {
	Level   Level
	Title   string
	Message string
	Kind    domain.Kind
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Recorder collects notifications in memory.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

func failureNotification(err error) Notification {
	kind := domain.KindOf(err)
	level := LevelError
	if domain.Retryable(kind) {
		level = LevelWarn
	}
	return Notification{
		Level:   level,
		Title:   "Generation failed",
		Message: domain.UserMessage(err),
		Kind:    kind,
	}
}
