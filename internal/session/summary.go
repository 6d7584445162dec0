package session

import (
	"time"

	"github.com/arnvid/diktat/internal/catalog"
)

// Summary is the immutable result of a finished session, handed to the
// summary screen and the recorders.
type Summary struct {
	SessionID  string
	Mode       Mode
	Difficulty catalog.Tier
	Chapter    string

	TotalWords   int
	CorrectWords int
	Score        int
	Accuracy     float64
	GameOver     bool

	Correct   []AnswerRecord
	Incorrect []AnswerRecord

	StartedAt time.Time
	EndedAt   time.Time
}

// BuildSummary freezes a finished session into a Summary.
func BuildSummary(s *State) Summary {
	return Summary{
		SessionID:    s.ID,
		Mode:         s.Config.Mode,
		Difficulty:   s.Config.Difficulty,
		Chapter:      s.Config.Chapter,
		TotalWords:   s.Attempted(),
		CorrectWords: len(s.Correct),
		Score:        s.Score,
		Accuracy:     s.AccuracyPercent(),
		GameOver:     s.GameOver,
		Correct:      append([]AnswerRecord(nil), s.Correct...),
		Incorrect:    append([]AnswerRecord(nil), s.Incorrect...),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}
