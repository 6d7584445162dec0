package session

import (
	"time"

	sess "github.com/arnvid/diktat/internal/session"
)

// sessionInitMsg is sent when session planning is complete.
type sessionInitMsg struct {
	State *sess.State
	Err   error
}

// roundEventMsg wraps one event from the active round's workers.
type roundEventMsg struct {
	Event sess.Event
}

// roundChannelClosedMsg is sent when the round's event channel drains
// after settlement.
type roundChannelClosedMsg struct{}

// revealTickMsg advances the letter-by-letter hint animation.
type revealTickMsg time.Time

// sessionEndMsg triggers the session end flow.
type sessionEndMsg struct{}
