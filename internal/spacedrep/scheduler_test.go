package spacedrep

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedulerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "words_to_review.json")
}

func TestRecordOutcomeFirstDrill(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewScheduler(schedulerPath(t))

	require.NoError(t, s.RecordOutcome("kaffe", true, now))

	rec := s.Record("kaffe")
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.IntervalDays)
	assert.True(t, rec.NextReviewAt.Equal(now.AddDate(0, 0, 1)))
}

func TestConsecutiveCorrectDrills(t *testing.T) {
	// N consecutive correct drills leave an interval of 2^(N-1) days.
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewScheduler(schedulerPath(t))

	wants := []int{1, 2, 4, 8, 16}
	for i, want := range wants {
		require.NoError(t, s.RecordOutcome("kaffe", true, now))
		rec := s.Record("kaffe")
		require.NotNil(t, rec)
		assert.Equal(t, want, rec.IntervalDays, "after drill %d", i+1)
	}

	require.NoError(t, s.RecordOutcome("kaffe", false, now))
	assert.Equal(t, 1, s.Record("kaffe").IntervalDays)
}

func TestDueItems(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewScheduler(schedulerPath(t))

	require.NoError(t, s.RecordOutcome("kaffe", true, now.AddDate(0, 0, -2)))
	require.NoError(t, s.RecordOutcome("melk", true, now))

	due := s.DueItems(now)
	assert.True(t, due["kaffe"])
	assert.False(t, due["melk"])
	assert.Equal(t, 1, s.DueCount(now))
}

func TestSchedulerPersistsAcrossReload(t *testing.T) {
	path := schedulerPath(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s := NewScheduler(path)
	require.NoError(t, s.RecordOutcome("kaffe", true, now))
	require.NoError(t, s.RecordOutcome("kaffe", true, now))

	reloaded := NewScheduler(path)
	rec := reloaded.Record("kaffe")
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.IntervalDays)
	assert.True(t, rec.NextReviewAt.Equal(now.AddDate(0, 0, 2)))
}

func TestSchedulerCorruptStoreStartsEmpty(t *testing.T) {
	path := schedulerPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewScheduler(path)
	assert.Empty(t, s.AllRecords())
}

func TestSchedulerSkipsMalformedEntries(t *testing.T) {
	path := schedulerPath(t)
	doc := map[string]map[string]any{
		"kaffe": {"nextReviewAt": "2026-03-02T09:00:00Z", "intervalDays": 2},
		"melk":  {"nextReviewAt": "not-a-date", "intervalDays": 4},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	s := NewScheduler(path)
	assert.NotNil(t, s.Record("kaffe"))
	assert.Nil(t, s.Record("melk"))
}
