package notify

import (
	"log/slog"
	"sync"
)

// Notifier surfaces transient user-facing notifications. No failure routed
// through it is fatal; the user recovers by retrying the same action.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

type logNotifier struct{}

// NewLogNotifier reports notifications through slog.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Success(title, description string) {
	slog.Info(title, "description", description)
}

func (logNotifier) Error(title, description string) {
	slog.Warn(title, "description", description)
}

type tee struct {
	targets []Notifier
}

// Tee fans a notification out to several notifiers, e.g. the log and the
// front-end buffer.
func Tee(targets ...Notifier) Notifier {
	return tee{targets: targets}
}

func (t tee) Success(title, description string) {
	for _, n := range t.targets {
		n.Success(title, description)
	}
}

func (t tee) Error(title, description string) {
	for _, n := range t.targets {
		n.Error(title, description)
	}
}

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"` // "default" or "destructive"
}

// Buffer keeps recent notifications so the local API can hand them to a
// front-end. Draining returns and clears the backlog.
type Buffer struct {
	mu      sync.Mutex
	pending []Notification
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Success(title, description string) {
	b.push(Notification{Title: title, Description: description, Variant: "default"})
}

func (b *Buffer) Error(title, description string) {
	b.push(Notification{Title: title, Description: description, Variant: "destructive"})
}

func (b *Buffer) push(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
	if len(b.pending) > 100 {
		b.pending = b.pending[len(b.pending)-100:]
	}
}

func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
