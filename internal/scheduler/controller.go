package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/notify"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/service"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/transfer"
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrDeleteInFlight = errors.New("this post is already being deleted")
)

// Controller orchestrates draft submission, deletion and the follow-up
// registry refreshes. Mutations never patch the cached list; the registry
// is re-fetched so the display only ever reflects confirmed server state.
type Controller struct {
	store    remote.PostStore
	reg      *registry.Registry
	drafts   service.DraftService
	notifier notify.Notifier

	mu         sync.Mutex
	submitting bool
	deleting   map[int64]bool
}

func NewController(store remote.PostStore, reg *registry.Registry, drafts service.DraftService, notifier notify.Notifier) *Controller {
	return &Controller{
		store:    store,
		reg:      reg,
		drafts:   drafts,
		notifier: notifier,
		deleting: make(map[int64]bool),
	}
}

// Submit validates the current draft and sends it to the remote store. On
// success the draft is cleared and the registry refreshed once; on failure
// the draft is preserved so the user doesn't lose typed content.
func (c *Controller) Submit(ctx context.Context) error {
	draft := c.drafts.Get()
	if err := draft.Validate(); err != nil {
		c.notifier.Error("Error", "Please fill in all required fields")
		return err
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	req := &transfer.SchedulePostRequest{
		Caption:       draft.Caption,
		Filename:      draft.ImageFilename,
		ScheduledTime: draft.ScheduledAt.Format(models.ScheduledTimeLayout),
		Platform:      draft.Platform,
	}
	if err := c.store.SchedulePost(ctx, req); err != nil {
		c.notifier.Error("Failed to Schedule", err.Error())
		return err
	}

	c.notifier.Success("Post Scheduled!", "Your post has been scheduled successfully.")
	if err := c.drafts.Reset(ctx); err != nil {
		slog.Warn("unable to reset draft after scheduling", "error", err)
	}
	c.reg.Refresh(ctx)
	return nil
}

// Delete removes a post by id. No optimistic removal: a failed delete
// leaves the registry untouched, since hiding a post still scheduled to
// fire would be worse than showing a stale one.
func (c *Controller) Delete(ctx context.Context, postID int64) error {
	c.mu.Lock()
	if c.deleting[postID] {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deleting[postID] = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.deleting, postID)
		c.mu.Unlock()
	}()

	if err := c.store.DeletePost(ctx, postID); err != nil {
		c.notifier.Error("Error", "Failed to delete post")
		return err
	}

	c.notifier.Success("Post Deleted", "Scheduled post has been removed")
	c.reg.Refresh(ctx)
	return nil
}
