package registry

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/notify"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
)

// Registry is the client-side cache of the remote store's active posts.
// It is the only writer of the held list; consumers read snapshots.
//
// Refreshes fully replace the list. Concurrent refreshes are allowed to
// race: each takes a monotonic ticket when issued, and a response loses if
// a response with a newer ticket has already been applied.
type Registry struct {
	store    remote.PostStore
	notifier notify.Notifier

	seq atomic.Uint64

	mu          sync.RWMutex
	posts       []models.ScheduledPost
	lastApplied uint64
	loading     bool
	closed      bool
}

func New(store remote.PostStore, notifier notify.Notifier) *Registry {
	return &Registry{store: store, notifier: notifier}
}

// Refresh replaces the held list with the remote store's current active
// posts. On failure the last-known list is kept and the user is notified.
func (r *Registry) Refresh(ctx context.Context) error {
	ticket := r.seq.Add(1)
	r.setLoading(true)
	defer r.setLoading(false)

	posts, err := r.store.ListPosts(ctx)
	if err != nil {
		slog.Error("unable to refresh scheduled posts", "error", err)
		r.notifier.Error("Error", "Failed to load scheduled posts")
		return err
	}

	r.apply(ticket, posts)
	return nil
}

// SilentRefresh is Refresh without the loading flag or user-facing error
// reporting. The background poll uses it so the view doesn't flicker.
func (r *Registry) SilentRefresh(ctx context.Context) {
	ticket := r.seq.Add(1)

	posts, err := r.store.ListPosts(ctx)
	if err != nil {
		slog.Debug("silent refresh failed", "error", err)
		return
	}

	r.apply(ticket, posts)
}

func (r *Registry) apply(ticket uint64, posts []models.ScheduledPost) bool {
	active := make([]models.ScheduledPost, 0, len(posts))
	for _, p := range posts {
		if p.Active() {
			active = append(active, p)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || ticket < r.lastApplied {
		return false
	}
	r.lastApplied = ticket
	r.posts = active
	return true
}

// Posts returns a copy of the held list.
func (r *Registry) Posts() []models.ScheduledPost {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ScheduledPost, len(r.posts))
	copy(out, r.posts)
	return out
}

// Get returns the held post with the given id, if any.
func (r *Registry) Get(postID int64) (models.ScheduledPost, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return models.ScheduledPost{}, false
}

func (r *Registry) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Registry) setLoading(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = v
}

// Close marks the registry torn down. In-flight responses resolving after
// Close are discarded without mutating state.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}
