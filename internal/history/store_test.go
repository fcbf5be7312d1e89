package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_OpenRunsMigrations(t *testing.T) {
	store := newTestStore(t)

	version, err := store.Version()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	statements := []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"}
	for i, stmt := range statements {
		err := store.Record(&Entry{
			Dialect:      "postgres",
			Statement:    stmt,
			Terminated:   true,
			RowsAffected: int64(i),
			ExecutedAt:   base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "SELECT 3;", entries[0].Statement)
	assert.Equal(t, "SELECT 2;", entries[1].Statement)
	assert.Equal(t, store.SessionID(), entries[0].SessionID)
	assert.True(t, entries[0].Terminated)
}

func TestStore_RecordFillsDefaults(t *testing.T) {
	store := newTestStore(t)

	entry := &Entry{Dialect: "oracle", Statement: "SELECT 1 FROM dual"}
	require.NoError(t, store.Record(entry))

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, store.SessionID(), entry.SessionID)
	assert.False(t, entry.ExecutedAt.IsZero())
}

func TestStore_RecordError(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(&Entry{
		Dialect:   "postgres",
		Statement: "SELEC 1;",
		Error:     `syntax error at or near "SELEC"`,
	}))

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Error, "syntax error")
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(&Entry{Dialect: "postgres", Statement: "SELECT 1;"}))
	require.NoError(t, store.Clear())

	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SessionIDsDiffer(t *testing.T) {
	a := NewStore()
	b := NewStore()
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestStore_NotOpened(t *testing.T) {
	store := NewStore()

	err := store.Record(&Entry{Statement: "SELECT 1;"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not opened")

	_, err = store.Recent(5)
	require.Error(t, err)

	assert.NoError(t, store.Close())
}
