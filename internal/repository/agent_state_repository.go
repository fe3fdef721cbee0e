package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
)

// AgentStateRepository persists the small bits of local state that must
// survive a restart: the draft being composed and the encrypted backend
// session cookie.
type AgentStateRepository interface {
	Migrate(ctx context.Context) error
	GetDraft(ctx context.Context) (*models.PostDraft, error)
	SaveDraft(ctx context.Context, draft *models.PostDraft) error
	ClearDraft(ctx context.Context) error
	GetSession(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, encrypted string) error
	ClearSession(ctx context.Context) error
}

type agentStateRepository struct {
	db *sql.DB
}

func NewAgentStateRepository(db *sql.DB) AgentStateRepository {
	return &agentStateRepository{db: db}
}

func (r *agentStateRepository) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS draft (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			caption TEXT NOT NULL DEFAULT '',
			image_filename TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL DEFAULT 'instagram',
			scheduled_at TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS remote_session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			cookie TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, q := range queries {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			slog.Error(err.Error())
			return err
		}
	}
	return nil
}

func (r *agentStateRepository) GetDraft(ctx context.Context) (*models.PostDraft, error) {
	query := `SELECT caption, image_filename, platform, scheduled_at FROM draft WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var draft models.PostDraft
	var scheduledAt string
	err := row.Scan(&draft.Caption, &draft.ImageFilename, &draft.Platform, &scheduledAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	if scheduledAt != "" {
		t, err := time.ParseInLocation(models.ScheduledTimeLayout, scheduledAt, time.Local)
		if err == nil {
			draft.ScheduledAt = t
		}
	}
	return &draft, nil
}

func (r *agentStateRepository) SaveDraft(ctx context.Context, draft *models.PostDraft) error {
	scheduledAt := ""
	if !draft.ScheduledAt.IsZero() {
		scheduledAt = draft.ScheduledAt.Format(models.ScheduledTimeLayout)
	}

	query := `
		INSERT INTO draft (id, caption, image_filename, platform, scheduled_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			caption = excluded.caption,
			image_filename = excluded.image_filename,
			platform = excluded.platform,
			scheduled_at = excluded.scheduled_at,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, draft.Caption, draft.ImageFilename, draft.Platform, scheduledAt, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *agentStateRepository) ClearDraft(ctx context.Context) error {
	query := `DELETE FROM draft WHERE id = 1`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *agentStateRepository) GetSession(ctx context.Context) (string, error) {
	query := `SELECT cookie FROM remote_session WHERE id = 1`

	var cookie string
	err := r.db.QueryRowContext(ctx, query).Scan(&cookie)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		slog.Info(err.Error())
		return "", err
	}
	return cookie, nil
}

func (r *agentStateRepository) SaveSession(ctx context.Context, encrypted string) error {
	query := `
		INSERT INTO remote_session (id, cookie, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cookie = excluded.cookie,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, encrypted, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *agentStateRepository) ClearSession(ctx context.Context) error {
	query := `DELETE FROM remote_session WHERE id = 1`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
