package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SessionRepo handles sessions.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, source, initial_title, flags, started_at)
	VALUES (?, ?, ?, ?, ?);
	`, s.ID, s.Source, s.InitialTitle, s.Flags, s.StartedAt)
	return err
}

func (r *SessionRepo) End(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`, at, id)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source, initial_title, flags, started_at, ended_at
	FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindByPrefix resolves an abbreviated session id. It returns nil when the
// prefix is empty or when no session or more than one session matches.
func (r *SessionRepo) FindByPrefix(ctx context.Context, prefix string) (*Session, error) {
	if prefix == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, source, initial_title, flags, started_at, ended_at
	FROM sessions WHERE substr(id, 1, length(?)) = ? LIMIT 2`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, nil
	}
	return &out[0], nil
}

// ListSummaries returns the most recent sessions first.
func (r *SessionRepo) ListSummaries(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.id, s.source, s.initial_title, s.flags, s.started_at, s.ended_at,
	 (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id),
	 (SELECT COUNT(*) FROM violations v WHERE v.session_id = s.id)
	FROM sessions s
	ORDER BY s.started_at DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var ended sql.NullTime
		if err := rows.Scan(&sum.ID, &sum.Source, &sum.InitialTitle, &sum.Flags, &sum.StartedAt, &ended,
			&sum.Messages, &sum.Violations); err != nil {
			return nil, err
		}
		if ended.Valid {
			t := ended.Time
			sum.EndedAt = &t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var ended sql.NullTime
	if err := row.Scan(&s.ID, &s.Source, &s.InitialTitle, &s.Flags, &s.StartedAt, &ended); err != nil {
		return Session{}, err
	}
	if ended.Valid {
		t := ended.Time
		s.EndedAt = &t
	}
	return s, nil
}
