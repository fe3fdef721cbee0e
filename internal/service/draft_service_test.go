package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu      sync.Mutex
	draft   *models.PostDraft
	session string
}

func (m *memRepo) Migrate(ctx context.Context) error { return nil }

func (m *memRepo) GetDraft(ctx context.Context) (*models.PostDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return nil, nil
	}
	d := *m.draft
	return &d, nil
}

func (m *memRepo) SaveDraft(ctx context.Context, draft *models.PostDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := *draft
	m.draft = &d
	return nil
}

func (m *memRepo) ClearDraft(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	return nil
}

func (m *memRepo) GetSession(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memRepo) SaveSession(ctx context.Context, encrypted string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = encrypted
	return nil
}

func (m *memRepo) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = ""
	return nil
}

func TestDraftService(t *testing.T) {
	ctx := context.Background()

	t.Run("starts with an empty instagram draft", func(t *testing.T) {
		s := NewDraftService(&memRepo{})
		d := s.Get()
		assert.Empty(t, d.Caption)
		assert.Equal(t, models.PlatformInstagram, d.Platform)
	})

	t.Run("update autosaves", func(t *testing.T) {
		repo := &memRepo{}
		s := NewDraftService(repo)

		draft := models.PostDraft{Caption: "hello", ImageFilename: "a.png", Platform: models.PlatformInstagram}
		require.NoError(t, s.Update(ctx, draft))

		saved, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "hello", saved.Caption)
	})

	t.Run("update defaults the platform", func(t *testing.T) {
		s := NewDraftService(&memRepo{})
		require.NoError(t, s.Update(ctx, models.PostDraft{Caption: "x"}))
		assert.Equal(t, models.PlatformInstagram, s.Get().Platform)
	})

	t.Run("reset clears memory and the saved copy", func(t *testing.T) {
		repo := &memRepo{}
		s := NewDraftService(repo)
		require.NoError(t, s.Update(ctx, models.PostDraft{Caption: "x", ScheduledAt: time.Now().Add(time.Hour)}))

		require.NoError(t, s.Reset(ctx))
		assert.Empty(t, s.Get().Caption)
		assert.True(t, s.Get().ScheduledAt.IsZero())

		saved, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		assert.Nil(t, saved)
	})

	t.Run("hydrate restores the saved draft", func(t *testing.T) {
		repo := &memRepo{}
		require.NoError(t, repo.SaveDraft(ctx, &models.PostDraft{Caption: "restored"}))

		s := NewDraftService(repo)
		require.NoError(t, s.Hydrate(ctx))
		d := s.Get()
		assert.Equal(t, "restored", d.Caption)
		assert.Equal(t, models.PlatformInstagram, d.Platform, "platform defaulted on restore")
	})

	t.Run("hydrate with nothing saved keeps the empty draft", func(t *testing.T) {
		s := NewDraftService(&memRepo{})
		require.NoError(t, s.Hydrate(ctx))
		assert.Empty(t, s.Get().Caption)
	})
}
