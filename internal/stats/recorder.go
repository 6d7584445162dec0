// Package stats aggregates lifetime dictation results: totals,
// per-difficulty accuracy and daily practice streaks.
package stats

import (
	"fmt"
	"time"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/store"
)

// SessionEntry is one finished session in the rolling history.
type SessionEntry struct {
	Date         string  `json:"date"`
	TotalWords   int     `json:"totalWords"`
	CorrectWords int     `json:"correctWords"`
	Accuracy     float64 `json:"accuracy"`
	Difficulty   string  `json:"difficulty"`
}

// TierCount tracks attempted/correct totals for one difficulty tier.
type TierCount struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// Aggregate is the persisted lifetime stats document.
type Aggregate struct {
	TotalSessions       int                  `json:"totalSessions"`
	TotalWordsAttempted int                  `json:"totalWordsAttempted"`
	TotalCorrect        int                  `json:"totalCorrect"`
	AccuracyHistory     []float64            `json:"accuracyHistory"`
	SessionHistory      []SessionEntry       `json:"sessionHistory"`
	DifficultyStats     map[string]TierCount `json:"difficultyStats"`
	CurrentStreak       int                  `json:"currentStreak"`
	LongestStreak       int                  `json:"longestStreak"`
	LastSessionDate     string               `json:"lastSessionDate"`
}

// Recorder loads, updates and persists the aggregate.
type Recorder struct {
	path string
	agg  Aggregate
}

// NewRecorder loads stats from path. Missing or corrupt stores start
// from zero.
func NewRecorder(path string) *Recorder {
	r := &Recorder{path: path}
	store.LoadDoc(path, &r.agg)
	if r.agg.DifficultyStats == nil {
		r.agg.DifficultyStats = make(map[string]TierCount)
	}
	for _, tier := range catalog.Tiers {
		if _, ok := r.agg.DifficultyStats[string(tier)]; !ok {
			r.agg.DifficultyStats[string(tier)] = TierCount{}
		}
	}
	return r
}

// Aggregate returns a copy of the current totals.
func (r *Recorder) Aggregate() Aggregate {
	agg := r.agg
	agg.AccuracyHistory = append([]float64(nil), r.agg.AccuracyHistory...)
	agg.SessionHistory = append([]SessionEntry(nil), r.agg.SessionHistory...)
	agg.DifficultyStats = make(map[string]TierCount, len(r.agg.DifficultyStats))
	for k, v := range r.agg.DifficultyStats {
		agg.DifficultyStats[k] = v
	}
	return agg
}

// RecordSession folds one finished session into the aggregate and
// persists. The streak counts consecutive calendar days with at least
// one session: a day later extends it, a gap resets to one, a second
// session the same day leaves it unchanged.
func (r *Recorder) RecordSession(tier catalog.Tier, totalWords, correctWords int, now time.Time) error {
	accuracy := 0.0
	if totalWords > 0 {
		accuracy = float64(correctWords) / float64(totalWords) * 100
	}

	r.agg.TotalSessions++
	r.agg.TotalWordsAttempted += totalWords
	r.agg.TotalCorrect += correctWords
	r.agg.AccuracyHistory = append(r.agg.AccuracyHistory, accuracy)
	r.agg.SessionHistory = append(r.agg.SessionHistory, SessionEntry{
		Date:         now.Format(time.RFC3339),
		TotalWords:   totalWords,
		CorrectWords: correctWords,
		Accuracy:     accuracy,
		Difficulty:   string(tier),
	})

	tc := r.agg.DifficultyStats[string(tier)]
	tc.Attempted += totalWords
	tc.Correct += correctWords
	r.agg.DifficultyStats[string(tier)] = tc

	r.updateStreak(now)

	if err := store.SaveDoc(r.path, r.agg); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (r *Recorder) updateStreak(now time.Time) {
	today := now.Format("2006-01-02")
	switch r.agg.LastSessionDate {
	case today:
		// Same day, streak unchanged.
	case "":
		r.agg.CurrentStreak = 1
	default:
		last, err := time.Parse("2006-01-02", r.agg.LastSessionDate)
		if err == nil && last.AddDate(0, 0, 1).Format("2006-01-02") == today {
			r.agg.CurrentStreak++
		} else {
			r.agg.CurrentStreak = 1
		}
	}
	if r.agg.CurrentStreak > r.agg.LongestStreak {
		r.agg.LongestStreak = r.agg.CurrentStreak
	}
	r.agg.LastSessionDate = today
}

// OverallAccuracy is lifetime correct over attempted, in percent.
func (a Aggregate) OverallAccuracy() float64 {
	if a.TotalWordsAttempted == 0 {
		return 0
	}
	return float64(a.TotalCorrect) / float64(a.TotalWordsAttempted) * 100
}

// TierAccuracy is per-difficulty accuracy in percent.
func (a Aggregate) TierAccuracy(tier catalog.Tier) float64 {
	tc := a.DifficultyStats[string(tier)]
	if tc.Attempted == 0 {
		return 0
	}
	return float64(tc.Correct) / float64(tc.Attempted) * 100
}
