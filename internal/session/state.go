package session

import (
	"time"

	"github.com/arnvid/diktat/internal/catalog"
)

// PointsPerWord is awarded for a word's first correct submission.
const PointsPerWord = 10

// AnswerRecord logs one settled word for the summary screen.
type AnswerRecord struct {
	Word        string
	Translation string
	Submitted   string // "Tiden utløp" sentinel on timeout
}

// TimeoutSentinel is logged as the submitted answer when a round times out.
const TimeoutSentinel = "Tiden utløp"

// State tracks a running session. It is owned by the coordinating update
// loop; round workers never touch it — they report events instead.
type State struct {
	ID     string
	Config Config
	Plan   *Plan

	CurrentIndex int
	Score        int
	CorrectCount int

	Hearts int
	Clock  ActionClock

	Correct   []AnswerRecord
	Incorrect []AnswerRecord
	attempted map[string]bool

	StartedAt time.Time
	EndedAt   time.Time
	Ended     bool
	GameOver  bool // action-mode timeout
}

// NewState creates a session over a fixed plan.
func NewState(id string, cfg Config, plan *Plan, now time.Time) *State {
	return &State{
		ID:        id,
		Config:    cfg,
		Plan:      plan,
		Hearts:    cfg.HeartsMax,
		attempted: make(map[string]bool),
		StartedAt: now,
	}
}

// CurrentItem returns the item for the active round.
func (s *State) CurrentItem() (catalog.Item, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= s.Plan.Len() {
		return catalog.Item{}, false
	}
	return s.Plan.Items[s.CurrentIndex], true
}

// CurrentTier returns the tier governing the active round.
func (s *State) CurrentTier() catalog.Tier {
	return s.Plan.TierAt(s.CurrentIndex)
}

// MarkAttempt records a submission against the item and reports whether it
// was the item's first attempt in this session.
func (s *State) MarkAttempt(itemID string) bool {
	if s.attempted[itemID] {
		return false
	}
	s.attempted[itemID] = true
	return true
}

// ApplyCorrect applies a correct settlement: the score moves only when the
// settling submission was the item's first attempt.
func (s *State) ApplyCorrect(rec AnswerRecord, firstAttempt bool) {
	s.CorrectCount++
	if firstAttempt {
		s.Score += PointsPerWord
	}
	s.Correct = append(s.Correct, rec)
}

// ApplyTimeout applies a timeout settlement. In action mode the session is
// over; the caller checks GameOver after advancing.
func (s *State) ApplyTimeout(rec AnswerRecord) {
	rec.Submitted = TimeoutSentinel
	s.Incorrect = append(s.Incorrect, rec)
	if s.Config.Mode == ModeAction {
		s.GameOver = true
	}
}

// Advance moves to the next round. It returns false when the plan is
// exhausted or the run is already over.
func (s *State) Advance() bool {
	s.CurrentIndex++
	return !s.GameOver && s.CurrentIndex < s.Plan.Len()
}

// SpendHeart consumes one heart for a hint. It returns false when no
// hearts remain or the session is not in action mode.
func (s *State) SpendHeart() bool {
	if s.Config.Mode != ModeAction || s.Hearts <= 0 {
		return false
	}
	s.Hearts--
	return true
}

// Attempted returns the number of settled rounds.
func (s *State) Attempted() int {
	return len(s.Correct) + len(s.Incorrect)
}

// AccuracyPercent returns the session accuracy over settled rounds.
func (s *State) AccuracyPercent() float64 {
	attempted := s.Attempted()
	if attempted == 0 {
		return 0
	}
	return float64(len(s.Correct)) / float64(attempted) * 100
}

// Finish marks the session ended.
func (s *State) Finish(now time.Time) {
	if !s.Ended {
		s.Ended = true
		s.EndedAt = now
	}
}
