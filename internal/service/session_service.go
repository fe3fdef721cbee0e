package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"

	config "github.com/SireeshaRagipati24/instagen-scheduler/configs"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/repository"
	"github.com/SireeshaRagipati24/instagen-scheduler/pkg/utils"
)

var ErrNoSession = errors.New("no saved session")

// SessionService performs the backend login handshake and keeps the
// captured session cookie encrypted at rest so a restart does not force a
// fresh login (which could trigger another OTP challenge upstream).
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Restore(ctx context.Context) error
	Logout(ctx context.Context) error
}

type sessionService struct {
	store remote.PostStore
	repo  repository.AgentStateRepository
	key   []byte
}

func NewSessionService(cfg config.Config, store remote.PostStore, repo repository.AgentStateRepository) SessionService {
	key := sha256.Sum256([]byte(cfg.SecretKey))
	return &sessionService{store: store, repo: repo, key: key[:]}
}

func (s *sessionService) Login(ctx context.Context, username, password string) error {
	if err := s.store.Login(ctx, username, password); err != nil {
		return err
	}

	cookie := s.store.SessionCookie()
	if cookie == "" {
		return nil
	}

	encrypted, err := utils.Encrypt([]byte(cookie), s.key)
	if err != nil {
		slog.Error("unable to encrypt session cookie", "error", err)
		return err
	}
	if err := s.repo.SaveSession(ctx, encrypted); err != nil {
		return err
	}
	return nil
}

func (s *sessionService) Restore(ctx context.Context) error {
	encrypted, err := s.repo.GetSession(ctx)
	if err != nil {
		return err
	}
	if encrypted == "" {
		return ErrNoSession
	}

	cookie, err := utils.Decrypt(encrypted, s.key)
	if err != nil {
		slog.Warn("saved session is unreadable, dropping it", "error", err)
		s.repo.ClearSession(ctx)
		return ErrNoSession
	}

	s.store.SetSessionCookie(cookie)
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.store.SetSessionCookie("")
	return s.repo.ClearSession(ctx)
}
