package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

func newTestStore(t *testing.T, retention int) *SQLiteHistoryStore {
	t.Helper()
	store, err := NewSQLiteHistoryStore(":memory:", retention)
	require.NoError(t, err)
	return store
}

func snapshotAt(ts time.Time, ssid, bssid string) domain.ScanSnapshot {
	return domain.ScanSnapshot{
		Timestamp: ts,
		Observations: []domain.NetworkObservation{
			{
				SSID:         ssid,
				BSSID:        bssid,
				Security:     "WPA2",
				RSSI:         -52,
				Frequency:    2412,
				Capabilities: "[WPA2-PSK-CCMP][ESS]",
			},
		},
	}
}

func TestHistoryStore_RoundTrip(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	want := snapshotAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), "Office", "00:17:F2:00:00:01")
	require.NoError(t, store.RecordSnapshot(ctx, want))

	window, err := store.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, window, 1)

	require.Len(t, window[0].Observations, 1)
	got := window[0].Observations[0]
	assert.Equal(t, "Office", got.SSID)
	assert.Equal(t, "00:17:F2:00:00:01", got.BSSID)
	assert.Equal(t, "WPA2", got.Security)
	assert.Equal(t, -52, got.RSSI)
	assert.Equal(t, 2412, got.Frequency)
	assert.Equal(t, "[WPA2-PSK-CCMP][ESS]", got.Capabilities)
	assert.True(t, want.Timestamp.Equal(window[0].Timestamp))
}

func TestHistoryStore_OldestFirst(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		snap := snapshotAt(base.Add(time.Duration(i)*time.Minute), "Office", "00:17:F2:00:00:01")
		require.NoError(t, store.RecordSnapshot(ctx, snap))
	}

	window, err := store.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, window, 3)

	for i := 1; i < len(window); i++ {
		assert.True(t, window[i-1].Timestamp.Before(window[i].Timestamp),
			"history must be ordered oldest to newest")
	}
}

func TestHistoryStore_MaxRecordsTakesNewest(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		snap := snapshotAt(base.Add(time.Duration(i)*time.Minute), "Office", "00:17:F2:00:00:01")
		require.NoError(t, store.RecordSnapshot(ctx, snap))
	}

	window, err := store.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, window, 2)

	// The window is the 2 most recent snapshots, still oldest first.
	assert.True(t, base.Add(3*time.Minute).Equal(window[0].Timestamp))
	assert.True(t, base.Add(4*time.Minute).Equal(window[1].Timestamp))
}

func TestHistoryStore_RetentionTrims(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		snap := snapshotAt(base.Add(time.Duration(i)*time.Minute), "Office", "00:17:F2:00:00:01")
		require.NoError(t, store.RecordSnapshot(ctx, snap))
	}

	window, err := store.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, window, 3, "retention must cap stored snapshots")

	// The survivors are the newest three.
	assert.True(t, base.Add(3*time.Minute).Equal(window[0].Timestamp))
	assert.True(t, base.Add(5*time.Minute).Equal(window[2].Timestamp))

	// Trimmed snapshots take their observations with them.
	var count int64
	require.NoError(t, store.db.Model(&ObservationModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestHistoryStore_EmptyHistory(t *testing.T) {
	store := newTestStore(t, 0)

	window, err := store.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, window)
}
