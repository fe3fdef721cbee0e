package service

import (
	"context"
	"testing"

	config "github.com/SireeshaRagipati24/instagen-scheduler/configs"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	remote.PostStore
	session  string
	loginErr error
}

func (f *fakeSessionStore) Login(ctx context.Context, username, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.session = "cookie-from-backend"
	return nil
}

func (f *fakeSessionStore) SessionCookie() string     { return f.session }
func (f *fakeSessionStore) SetSessionCookie(v string) { f.session = v }

func testConfig() config.Config {
	return config.Config{SecretKey: "unit-test-secret"}
}

func TestSessionService_LoginPersistsEncrypted(t *testing.T) {
	ctx := context.Background()
	store := &fakeSessionStore{}
	repo := &memRepo{}
	s := NewSessionService(testConfig(), store, repo)

	require.NoError(t, s.Login(ctx, "sireesha", "secret"))

	blob, err := repo.GetSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, blob)
	assert.NotContains(t, blob, "cookie-from-backend", "cookie must not be stored in the clear")
}

func TestSessionService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips the cookie", func(t *testing.T) {
		repo := &memRepo{}
		login := &fakeSessionStore{}
		require.NoError(t, NewSessionService(testConfig(), login, repo).Login(ctx, "u", "p"))

		// fresh store, as after an agent restart
		fresh := &fakeSessionStore{}
		require.NoError(t, NewSessionService(testConfig(), fresh, repo).Restore(ctx))
		assert.Equal(t, "cookie-from-backend", fresh.SessionCookie())
	})

	t.Run("nothing saved", func(t *testing.T) {
		s := NewSessionService(testConfig(), &fakeSessionStore{}, &memRepo{})
		assert.ErrorIs(t, s.Restore(ctx), ErrNoSession)
	})

	t.Run("unreadable blob is dropped", func(t *testing.T) {
		repo := &memRepo{}
		require.NoError(t, repo.SaveSession(ctx, "not-really-ciphertext"))

		s := NewSessionService(testConfig(), &fakeSessionStore{}, repo)
		assert.ErrorIs(t, s.Restore(ctx), ErrNoSession)

		blob, err := repo.GetSession(ctx)
		require.NoError(t, err)
		assert.Empty(t, blob)
	})

	t.Run("wrong key cannot decrypt", func(t *testing.T) {
		repo := &memRepo{}
		login := &fakeSessionStore{}
		require.NoError(t, NewSessionService(testConfig(), login, repo).Login(ctx, "u", "p"))

		other := config.Config{SecretKey: "different-secret"}
		s := NewSessionService(other, &fakeSessionStore{}, repo)
		assert.ErrorIs(t, s.Restore(ctx), ErrNoSession)
	})
}

func TestSessionService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	store := &fakeSessionStore{}
	s := NewSessionService(testConfig(), store, repo)

	require.NoError(t, s.Login(ctx, "u", "p"))
	require.NoError(t, s.Logout(ctx))

	assert.Empty(t, store.SessionCookie())
	blob, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, blob)
}
