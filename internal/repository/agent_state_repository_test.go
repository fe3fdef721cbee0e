package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) AgentStateRepository {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAgentStateRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestAgentStateRepository_Draft(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("empty store has no draft", func(t *testing.T) {
		draft, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		assert.Nil(t, draft)
	})

	t.Run("save and reload round-trips", func(t *testing.T) {
		at := time.Date(2026, 9, 12, 18, 30, 0, 0, time.Local)
		in := &models.PostDraft{
			Caption:       "behind the scenes",
			ImageFilename: "gen_7.png",
			Platform:      models.PlatformInstagram,
			ScheduledAt:   at,
		}
		require.NoError(t, repo.SaveDraft(ctx, in))

		out, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, in.Caption, out.Caption)
		assert.Equal(t, in.ImageFilename, out.ImageFilename)
		assert.Equal(t, in.Platform, out.Platform)
		assert.True(t, at.Equal(out.ScheduledAt))
	})

	t.Run("saving again overwrites", func(t *testing.T) {
		require.NoError(t, repo.SaveDraft(ctx, &models.PostDraft{Caption: "v2", Platform: models.PlatformInstagram}))

		out, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, "v2", out.Caption)
		assert.True(t, out.ScheduledAt.IsZero())
	})

	t.Run("clear removes the draft", func(t *testing.T) {
		require.NoError(t, repo.ClearDraft(ctx))
		out, err := repo.GetDraft(ctx)
		require.NoError(t, err)
		assert.Nil(t, out)
	})
}

func TestAgentStateRepository_Session(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	blob, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, blob)

	require.NoError(t, repo.SaveSession(ctx, "ciphertext-1"))
	require.NoError(t, repo.SaveSession(ctx, "ciphertext-2"))

	blob, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ciphertext-2", blob)

	require.NoError(t, repo.ClearSession(ctx))
	blob, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, blob)
}
