package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"CryptoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_LatestDirection(t *testing.T) {
	r := openTestRecorder(t)

	_, ok, err := r.LatestDirection("BTCUSDT", model.Interval1h)
	require.NoError(t, err)
	assert.False(t, ok)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	snaps := []*Snapshot{
		{Symbol: "BTCUSDT", Interval: model.Interval1h, At: base, Signal: &model.Signal{Direction: model.DirectionUp}},
		{Symbol: "BTCUSDT", Interval: model.Interval1h, At: base.Add(time.Hour), Signal: &model.Signal{Direction: model.DirectionDown}},
		{Symbol: "BTCUSDT", Interval: model.Interval4h, At: base.Add(2 * time.Hour), Signal: &model.Signal{Direction: model.DirectionUp}},
		{Symbol: "ETHUSDT", Interval: model.Interval1h, At: base.Add(3 * time.Hour)},
	}
	for _, s := range snaps {
		require.NoError(t, r.RecordSnapshot(s))
	}

	dir, ok, err := r.LatestDirection("BTCUSDT", model.Interval1h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.DirectionDown, dir)

	dir, ok, err = r.LatestDirection("ETHUSDT", model.Interval1h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.DirectionNeutral, dir)

	n, err := r.countSnapshots("BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteRecorder_RecordSignalChange(t *testing.T) {
	r := openTestRecorder(t)
	require.NoError(t, r.RecordSignalChange(&SignalChange{
		Symbol: "SOLUSDT", Interval: model.Interval1h,
		From: model.DirectionNeutral, To: model.DirectionUp,
		Price: 150, Confidence: 65,
	}))

	var to string
	require.NoError(t, r.db.QueryRow(`SELECT to_dir FROM signal_changes WHERE symbol = 'SOLUSDT'`).Scan(&to))
	assert.Equal(t, "UP", to)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordSnapshot(&Snapshot{}))
	_, ok, err := r.LatestDirection("X", model.Interval1h)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.Close())
}
