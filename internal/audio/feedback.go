package audio

import (
	"context"
	"time"
)

// Cue names the short feedback sounds played after an answer.
type Cue string

const (
	CueCorrect   Cue = "correct.mp3"
	CueIncorrect Cue = "incorrect.mp3"
)

// Feedback plays answer cues on a best-effort basis. A missing cue file
// or player failure is silently ignored.
type Feedback struct {
	player interface {
		Play(ctx context.Context, ref string) error
	}
}

// NewFeedback wraps a player for cue playback. player may be nil.
func NewFeedback(player interface {
	Play(ctx context.Context, ref string) error
}) *Feedback {
	return &Feedback{player: player}
}

// Play fires the cue asynchronously so the session loop is never held
// up by feedback sounds.
func (f *Feedback) Play(cue Cue) {
	if f == nil || f.player == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = f.player.Play(ctx, string(cue))
	}()
}
