package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnvid/diktat/internal/catalog"
)

func testRecorder(t *testing.T) (*Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game_stats.json")
	return NewRecorder(path), path
}

func TestRecordSessionTotals(t *testing.T) {
	r, _ := testRecorder(t)
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordSession(catalog.TierEasy, 10, 8, now))
	require.NoError(t, r.RecordSession(catalog.TierHard, 5, 2, now))

	agg := r.Aggregate()
	assert.Equal(t, 2, agg.TotalSessions)
	assert.Equal(t, 15, agg.TotalWordsAttempted)
	assert.Equal(t, 10, agg.TotalCorrect)
	require.Len(t, agg.SessionHistory, 2)
	assert.Equal(t, "easy", agg.SessionHistory[0].Difficulty)
	assert.InDelta(t, 80.0, agg.AccuracyHistory[0], 0.001)
	assert.InDelta(t, 40.0, agg.AccuracyHistory[1], 0.001)

	assert.Equal(t, 10, agg.DifficultyStats["easy"].Attempted)
	assert.Equal(t, 8, agg.DifficultyStats["easy"].Correct)
	assert.InDelta(t, 40.0, agg.TierAccuracy(catalog.TierHard), 0.001)
	assert.InDelta(t, 100.0*10/15, agg.OverallAccuracy(), 0.001)
}

func TestStreakRules(t *testing.T) {
	r, _ := testRecorder(t)
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// First session ever.
	require.NoError(t, r.RecordSession(catalog.TierEasy, 1, 1, day1))
	assert.Equal(t, 1, r.Aggregate().CurrentStreak)

	// Second session the same day leaves the streak unchanged.
	require.NoError(t, r.RecordSession(catalog.TierEasy, 1, 1, day1.Add(4*time.Hour)))
	assert.Equal(t, 1, r.Aggregate().CurrentStreak)

	// The next calendar day extends it.
	require.NoError(t, r.RecordSession(catalog.TierEasy, 1, 1, day1.AddDate(0, 0, 1)))
	assert.Equal(t, 2, r.Aggregate().CurrentStreak)

	require.NoError(t, r.RecordSession(catalog.TierEasy, 1, 1, day1.AddDate(0, 0, 2)))
	assert.Equal(t, 3, r.Aggregate().CurrentStreak)
	assert.Equal(t, 3, r.Aggregate().LongestStreak)

	// A gap resets to one but keeps the longest.
	require.NoError(t, r.RecordSession(catalog.TierEasy, 1, 1, day1.AddDate(0, 0, 7)))
	agg := r.Aggregate()
	assert.Equal(t, 1, agg.CurrentStreak)
	assert.Equal(t, 3, agg.LongestStreak)
}

func TestZeroWordSession(t *testing.T) {
	r, _ := testRecorder(t)
	require.NoError(t, r.RecordSession(catalog.TierEasy, 0, 0, time.Now()))

	agg := r.Aggregate()
	assert.Equal(t, 1, agg.TotalSessions)
	assert.Equal(t, 0.0, agg.AccuracyHistory[0])
	assert.Equal(t, 0.0, agg.OverallAccuracy())
}

func TestStatsPersistAcrossReload(t *testing.T) {
	r, path := testRecorder(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordSession(catalog.TierMedium, 10, 7, now))

	reloaded := NewRecorder(path)
	agg := reloaded.Aggregate()
	assert.Equal(t, 1, agg.TotalSessions)
	assert.Equal(t, 7, agg.DifficultyStats["medium"].Correct)
	assert.Equal(t, "2026-03-01", agg.LastSessionDate)
}
