package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workaholic/backend/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outcomes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)

	base := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Append(domain.NotificationOutcome{
			TaskID:   "t1",
			Username: "alice",
			Channel:  domain.ChannelFCM,
			Success:  true,
			At:       base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first.
	require.True(t, recent[0].At.After(recent[1].At))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 3, size)
}

func TestAppendDuplicatesKept(t *testing.T) {
	store := openStore(t)

	outcome := domain.NotificationOutcome{
		TaskID:   "t1",
		Username: "alice",
		Channel:  domain.ChannelFCM,
		Success:  true,
		At:       time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(outcome))
	require.NoError(t, store.Append(outcome))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)
}

func TestCleanup(t *testing.T) {
	store := openStore(t)

	old := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(domain.NotificationOutcome{Username: "alice", Channel: domain.ChannelFCM, At: old}))
	require.NoError(t, store.Append(domain.NotificationOutcome{Username: "alice", Channel: domain.ChannelFCM, At: fresh}))

	require.NoError(t, store.Cleanup(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	recent, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.True(t, recent[0].At.Equal(fresh))
}

func TestClosedStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "outcomes.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.Error(t, store.Append(domain.NotificationOutcome{Username: "alice"}))
	_, err = store.Size()
	require.Error(t, err)
}
