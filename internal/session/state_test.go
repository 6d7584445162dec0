package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arnvid/diktat/internal/catalog"
)

func planOf(items ...catalog.Item) *Plan {
	return &Plan{Mode: ModePractice, Items: items}
}

func TestScoreOnlyForFirstAttempt(t *testing.T) {
	cfg := Defaults()
	plan := planOf(
		catalog.Item{ID: "hei", Tier: catalog.TierEasy},
		catalog.Item{ID: "takk", Tier: catalog.TierEasy},
	)
	s := NewState("s1", cfg, plan, time.Now())

	// First word: wrong submission first, then correct. Points forfeited.
	first := s.MarkAttempt("hei")
	assert.True(t, first)
	first = s.MarkAttempt("hei")
	assert.False(t, first)
	s.ApplyCorrect(AnswerRecord{Word: "hei", Submitted: "hei"}, first)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.CorrectCount)

	// Second word: correct on the first try.
	s.Advance()
	first = s.MarkAttempt("takk")
	s.ApplyCorrect(AnswerRecord{Word: "takk", Submitted: "takk"}, first)
	assert.Equal(t, PointsPerWord, s.Score)
	assert.LessOrEqual(t, s.Score, PointsPerWord*len(s.Correct))
}

func TestScoreBoundedByCorrectWords(t *testing.T) {
	cfg := Defaults()
	items := []catalog.Item{
		{ID: "hei", Tier: catalog.TierEasy},
		{ID: "takk", Tier: catalog.TierEasy},
		{ID: "kaffe", Tier: catalog.TierEasy},
	}
	s := NewState("s1", cfg, planOf(items...), time.Now())

	for _, it := range items {
		first := s.MarkAttempt(it.ID)
		s.ApplyCorrect(AnswerRecord{Word: it.ID, Submitted: it.ID}, first)
		s.Advance()
	}
	assert.Equal(t, PointsPerWord*len(s.Correct), s.Score)
}

func TestTimeoutRecordsSentinel(t *testing.T) {
	cfg := Defaults()
	s := NewState("s1", cfg, planOf(catalog.Item{ID: "hei"}), time.Now())

	s.ApplyTimeout(AnswerRecord{Word: "hei", Submitted: "whatever"})

	assert.Len(t, s.Incorrect, 1)
	assert.Equal(t, TimeoutSentinel, s.Incorrect[0].Submitted)
	assert.False(t, s.GameOver, "practice timeouts do not end the run")
}

func TestActionTimeoutEndsRun(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = ModeAction
	plan := &Plan{Mode: ModeAction, Items: []catalog.Item{{ID: "hei"}, {ID: "takk"}}, easyCount: 2}
	s := NewState("s1", cfg, plan, time.Now())

	s.ApplyTimeout(AnswerRecord{Word: "hei"})
	assert.True(t, s.GameOver)
	assert.False(t, s.Advance())
}

func TestSpendHeart(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = ModeAction
	cfg.HeartsMax = 3
	s := NewState("s1", cfg, planOf(catalog.Item{ID: "hei"}), time.Now())

	for i := 0; i < 3; i++ {
		assert.True(t, s.SpendHeart())
	}
	assert.False(t, s.SpendHeart())
	assert.Equal(t, 0, s.Hearts)
}

func TestSpendHeartPracticeMode(t *testing.T) {
	s := NewState("s1", Defaults(), planOf(catalog.Item{ID: "hei"}), time.Now())
	assert.False(t, s.SpendHeart(), "hints cost nothing outside action mode")
}

func TestAccuracyPercent(t *testing.T) {
	s := NewState("s1", Defaults(), planOf(), time.Now())
	assert.Equal(t, 0.0, s.AccuracyPercent())

	s.Correct = append(s.Correct, AnswerRecord{}, AnswerRecord{}, AnswerRecord{})
	s.Incorrect = append(s.Incorrect, AnswerRecord{})
	assert.InDelta(t, 75.0, s.AccuracyPercent(), 0.001)
}

func TestFinishIsIdempotent(t *testing.T) {
	s := NewState("s1", Defaults(), planOf(), time.Now())
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Finish(first)
	s.Finish(first.Add(time.Hour))
	assert.True(t, s.EndedAt.Equal(first))
}
