package repository

import (
	"context"
	"database/sql"
)

// MessageRepo handles bridge traffic.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Insert(ctx context.Context, m Message) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO messages(id, session_id, seq, direction, name, payload, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, m.ID, m.SessionID, m.Seq, m.Direction, m.Name, m.Payload, m.CreatedAt)
	return err
}

func (r *MessageRepo) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, seq, direction, name, payload, created_at
	FROM messages WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Seq, &m.Direction, &m.Name, &m.Payload, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
