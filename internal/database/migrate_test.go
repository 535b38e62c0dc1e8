package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"sessions", "messages", "violations"} {
		var n int
		err := db.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		require.Equal(t, 1, n, table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO messages(id, session_id, seq, direction, name, payload, created_at)
			VALUES ('m1', 'missing', 1, 'event', 'receiveTitle', '"x"', ?)`, Now())
		return err
	})
	require.Error(t, err)
}
