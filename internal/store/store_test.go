package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prospector-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, store.Migrate(db.Pool))
}

func TestSendLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSend(ctx, db.Pool, "A@acme.com", "Hello"))
	require.NoError(t, store.RecordSend(ctx, db.Pool, "b@acme.com", "Hello"))

	n, err := store.CountSentSince(ctx, db.Pool, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = store.CountSentSince(ctx, db.Pool, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCleanupOldSendsKeepsRecent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSend(ctx, db.Pool, "a@acme.com", "Hello"))
	deleted, err := store.CleanupOldSends(db.Pool)
	require.NoError(t, err)
	require.Zero(t, deleted)

	n, err := store.CountSentSince(ctx, db.Pool, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSuppressions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	added, err := store.Suppress(ctx, db.Pool, " Opt-Out@acme.com ", "reply")
	require.NoError(t, err)
	require.True(t, added)

	// normalization makes re-suppression a no-op
	added, err = store.Suppress(ctx, db.Pool, "opt-out@acme.com", "manual")
	require.NoError(t, err)
	require.False(t, added)

	ok, err := store.IsSuppressed(ctx, db.Pool, "OPT-OUT@ACME.COM")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.IsSuppressed(ctx, db.Pool, "someone@else.com")
	require.NoError(t, err)
	require.False(t, ok)

	list, err := store.ListSuppressions(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "opt-out@acme.com", list[0].Email)
	require.Equal(t, "reply", list[0].Reason)
}
