package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/repository"
)

// DraftService owns the in-memory draft and keeps it autosaved so typed
// content survives an agent restart. Persistence failures never block an
// edit; the in-memory draft is the working copy.
type DraftService interface {
	Get() models.PostDraft
	Update(ctx context.Context, draft models.PostDraft) error
	Reset(ctx context.Context) error
	Hydrate(ctx context.Context) error
}

type draftService struct {
	repo repository.AgentStateRepository

	mu    sync.Mutex
	draft models.PostDraft
}

func NewDraftService(repo repository.AgentStateRepository) DraftService {
	return &draftService{repo: repo, draft: models.NewDraft()}
}

func (s *draftService) Get() models.PostDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *draftService) Update(ctx context.Context, draft models.PostDraft) error {
	if draft.Platform == "" {
		draft.Platform = models.PlatformInstagram
	}

	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()

	if err := s.repo.SaveDraft(ctx, &draft); err != nil {
		slog.Warn("draft autosave failed", "error", err)
		return err
	}
	return nil
}

func (s *draftService) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.draft = models.NewDraft()
	s.mu.Unlock()

	if err := s.repo.ClearDraft(ctx); err != nil {
		slog.Warn("unable to clear saved draft", "error", err)
		return err
	}
	return nil
}

// Hydrate restores the autosaved draft, if any. Called once at startup.
func (s *draftService) Hydrate(ctx context.Context) error {
	draft, err := s.repo.GetDraft(ctx)
	if err != nil {
		return err
	}
	if draft == nil {
		return nil
	}
	if draft.Platform == "" {
		draft.Platform = models.PlatformInstagram
	}

	s.mu.Lock()
	s.draft = *draft
	s.mu.Unlock()
	return nil
}
