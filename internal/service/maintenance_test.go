package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/portbridge/internal/database/repository"
)

func TestPruneKeepsMostRecentSessions(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	rec := NewRecorder(context.Background(), db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, rec.Sessions.Insert(rec.ctx, repository.Session{
			ID: id, Source: "test", InitialTitle: "Hello", Flags: "{}",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
		require.NoError(t, rec.Messages.Insert(rec.ctx, repository.Message{
			ID: id + "-m", SessionID: id, Seq: 1, Direction: "event",
			Name: "receiveTitle", Payload: `"Hello"`, CreatedAt: base,
		}))
		require.NoError(t, rec.Violations.Insert(rec.ctx, repository.Violation{
			ID: id + "-v", SessionID: id, Seq: 2, Reason: "unknown port", CreatedAt: base,
		}))
	}

	m := &Maintenance{DB: db}
	removed, err := m.Prune(rec.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	sums, err := rec.Sessions.ListSummaries(rec.ctx, 10)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	require.Equal(t, "new", sums[0].ID)
	require.Equal(t, 1, sums[0].Messages)
	require.Equal(t, 1, sums[0].Violations)

	for _, id := range []string{"old", "mid"} {
		msgs, err := rec.Messages.ListBySession(rec.ctx, id)
		require.NoError(t, err)
		require.Empty(t, msgs)
		vs, err := rec.Violations.ListBySession(rec.ctx, id)
		require.NoError(t, err)
		require.Empty(t, vs)
	}

	removed, err = m.Prune(rec.ctx, 5)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestPruneWithoutDB(t *testing.T) {
	t.Parallel()

	_, err := (&Maintenance{}).Prune(context.Background(), 0)
	require.Error(t, err)
}
