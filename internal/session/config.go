// Package session implements the dictation session engine: planning which
// words to drill, driving each timed round, and scoring the results.
package session

import (
	"time"

	"github.com/arnvid/diktat/internal/catalog"
)

// Mode selects the session flavor.
type Mode string

const (
	// ModePractice drills one difficulty tier with a fixed per-word clock.
	ModePractice Mode = "practice"
	// ModeAction drills every tier in ascending order under a depleting
	// shared clock; a single timeout ends the run.
	ModeAction Mode = "action"
)

// Config carries every per-session setting. It is built once at session
// start and passed into each component that needs it; nothing reads
// ambient settings state mid-session.
type Config struct {
	Mode            Mode
	Difficulty      catalog.Tier // practice mode only
	TargetSize      int          // words per practice session
	Chapter         string       // chapter folder, empty for the flat manifest
	ShowTranslation bool

	PracticeBudget time.Duration // per-word clock in practice mode
	RepeatInterval time.Duration // pause between audio repeats
	HeartsMax      int           // hint budget in action mode
}

// Defaults mirrors the trainer's stock settings.
func Defaults() Config {
	return Config{
		Mode:           ModePractice,
		Difficulty:     catalog.TierEasy,
		TargetSize:     10,
		PracticeBudget: 20 * time.Second,
		RepeatInterval: 3 * time.Second,
		HeartsMax:      3,
	}
}
