package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/portbridge/internal/database"
)

// Maintenance houses destructive journal operations.
type Maintenance struct {
	DB *sql.DB
}

// Prune deletes every session except the keep most recent, together with
// their messages and violations. It returns how many sessions were removed.
func (s *Maintenance) Prune(ctx context.Context, keep int) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	keep = max(keep, 0)

	const stale = `SELECT id FROM sessions ORDER BY started_at DESC, id DESC LIMIT -1 OFFSET ?`
	var removed int64
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"messages", "violations"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t+" WHERE session_id IN ("+stale+")", keep); err != nil {
				return fmt.Errorf("prune %s: %w", t, err)
			}
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id IN ("+stale+")", keep)
		if err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	}); err != nil {
		return 0, err
	}
	if removed > 0 {
		_, _ = s.DB.ExecContext(ctx, "VACUUM")
	}
	return removed, nil
}
