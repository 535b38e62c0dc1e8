package repository

import (
	"context"
	"database/sql"
)

// ViolationRepo handles dropped protocol messages.
type ViolationRepo struct {
	db *sql.DB
}

func NewViolationRepo(db *sql.DB) *ViolationRepo { return &ViolationRepo{db: db} }

func (r *ViolationRepo) Insert(ctx context.Context, v Violation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO violations(id, session_id, seq, direction, name, reason, suggestion, payload, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, v.ID, v.SessionID, v.Seq, v.Direction, v.Name, v.Reason, v.Suggestion, v.Payload, v.CreatedAt)
	return err
}

func (r *ViolationRepo) ListBySession(ctx context.Context, sessionID string) ([]Violation, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, seq, direction, name, reason, suggestion, payload, created_at
	FROM violations WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Violation
	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Seq, &v.Direction, &v.Name, &v.Reason, &v.Suggestion,
			&v.Payload, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
