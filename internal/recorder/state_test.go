package recorder

import (
	"os"
	"path/filepath"
	"testing"

	"CryptoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRecorder_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "state.json")

	r, err := NewStateRecorder(path)
	require.NoError(t, err)
	_, ok, err := r.LatestDirection("BTCUSDT", model.Interval1h)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.RecordSnapshot(&Snapshot{
		Symbol: "BTCUSDT", Interval: model.Interval1h,
		Signal: &model.Signal{Direction: model.DirectionUp},
	}))
	require.NoError(t, r.RecordSnapshot(&Snapshot{Symbol: "BTCUSDT", Interval: model.Interval4h}))
	require.NoError(t, r.RecordSignalChange(&SignalChange{
		Symbol: "BTCUSDT", From: model.DirectionDown, To: model.DirectionUp,
	}))
	require.NoError(t, r.Close())

	reopened, err := NewStateRecorder(path)
	require.NoError(t, err)
	dir, ok, err := reopened.LatestDirection("BTCUSDT", model.Interval1h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.DirectionUp, dir)

	dir, ok, _ = reopened.LatestDirection("BTCUSDT", model.Interval4h)
	assert.True(t, ok)
	assert.Equal(t, model.DirectionNeutral, dir)

	require.Len(t, reopened.Changes(), 1)
	assert.Equal(t, model.DirectionUp, reopened.Changes()[0].To)
}

func TestStateRecorder_BoundsChangeLog(t *testing.T) {
	r, err := NewStateRecorder(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	for i := 0; i < maxStoredChanges+5; i++ {
		require.NoError(t, r.RecordSignalChange(&SignalChange{Symbol: "ETHUSDT", Price: float64(i)}))
	}
	changes := r.Changes()
	require.Len(t, changes, maxStoredChanges)
	assert.Equal(t, float64(5), changes[0].Price)
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewStateRecorder(path)
	assert.Error(t, err)
}
