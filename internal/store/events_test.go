package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEventLog(t *testing.T) *EventLog {
	t.Helper()
	l, err := OpenEventLog(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndCountSessions(t *testing.T) {
	l := testEventLog(t)
	ctx := context.Background()

	n, err := l.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	now := time.Now()
	require.NoError(t, l.AppendSession(ctx, SessionEvent{
		SessionID:    "s1",
		Mode:         "practice",
		Difficulty:   "easy",
		Chapter:      "basics",
		TotalWords:   10,
		CorrectWords: 8,
		Score:        80,
		Accuracy:     80,
		StartedAt:    now.Add(-2 * time.Minute),
		EndedAt:      now,
	}))

	n, err = l.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecentMisses(t *testing.T) {
	l := testEventLog(t)
	ctx := context.Background()

	answers := []AnswerEvent{
		{SessionID: "s1", Word: "hei", Tier: "easy", Submitted: "hei", Correct: true},
		{SessionID: "s1", Word: "kaffe", Tier: "easy", Submitted: "kafe"},
		{SessionID: "s1", Word: "melk", Tier: "easy", Submitted: "Tiden utløp", Timeout: true},
	}
	for _, a := range answers {
		require.NoError(t, l.AppendAnswer(ctx, a))
	}

	misses, err := l.RecentMisses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, misses, 2)

	// Newest first.
	assert.Equal(t, "melk", misses[0].Word)
	assert.True(t, misses[0].Timeout)
	assert.Equal(t, "kaffe", misses[1].Word)
	assert.False(t, misses[1].Timeout)

	misses, err = l.RecentMisses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, misses, 1)
}

func TestOpenEventLogCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "events.db")
	l, err := OpenEventLog(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
