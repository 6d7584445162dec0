package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arnvid/diktat/internal/catalog"
)

// Player plays one audio prompt and blocks until playback finishes. It
// blocks only the audio worker's goroutine, never the coordinator.
type Player interface {
	Play(ctx context.Context, audioRef string) error
}

// SettleReason is the terminal state a round settled into.
type SettleReason int

const (
	SettleCorrect SettleReason = iota
	SettleTimeout
	SettleStopped
)

// ErrJoinTimeout is returned when a round worker fails to observe
// cancellation within the teardown bound. The worker is abandoned
// daemon-style; teardown proceeds anyway.
var ErrJoinTimeout = errors.New("round worker did not stop within join timeout")

// Event is a one-way signal from a round worker to the coordinator.
// Workers never write session state directly.
type Event interface{ roundEvent() }

// TickEvent publishes the remaining seconds once per second.
type TickEvent struct{ RemainingSecs int }

// SettledEvent reports the exactly-once terminal transition.
type SettledEvent struct {
	Reason  SettleReason
	Elapsed time.Duration
}

// AudioErrorEvent reports a failed prompt playback. The round continues
// without audio; playback is retried on the next round.
type AudioErrorEvent struct{ Err error }

func (TickEvent) roundEvent()       {}
func (SettledEvent) roundEvent()    {}
func (AudioErrorEvent) roundEvent() {}

// Round drives a single item: looping audio prompt racing a countdown
// racing the learner's submission. Whichever terminal event arrives first
// claims settlement with a compare-and-swap; the losers observe the claim
// and stand down.
type Round struct {
	item   catalog.Item
	answer string
	budget int // seconds
	repeat time.Duration
	player Player

	events  chan Event
	done    chan struct{}
	settled atomic.Bool
	started time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRound prepares a round for one item with a total budget in seconds.
func NewRound(item catalog.Item, budgetSecs int, repeatInterval time.Duration, player Player) *Round {
	return &Round{
		item:   item,
		answer: normalizeAnswer(item.ID),
		budget: budgetSecs,
		repeat: repeatInterval,
		player: player,
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
}

// Events is the worker-to-coordinator signal channel.
func (r *Round) Events() <-chan Event {
	return r.events
}

// Item returns the item being drilled.
func (r *Round) Item() catalog.Item {
	return r.item
}

// BudgetSecs returns the round's total clock.
func (r *Round) BudgetSecs() int {
	return r.budget
}

// Start launches the audio-repeat worker and the countdown worker.
func (r *Round) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.started = time.Now()

	r.wg.Add(2)
	go r.audioLoop(ctx)
	go r.countdown(ctx)
}

// audioLoop plays the prompt, waits the repeat interval, and plays again
// until the round settles. It only ever reads the settled signal.
func (r *Round) audioLoop(ctx context.Context) {
	defer r.wg.Done()
	if r.player == nil || r.item.AudioFile == "" {
		return
	}
	for {
		if r.isDone(ctx) {
			return
		}
		if err := r.player.Play(ctx, r.item.AudioFile); err != nil {
			r.emit(AudioErrorEvent{Err: err})
			return
		}
		select {
		case <-time.After(r.repeat):
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// countdown ticks at one-second resolution. It is the only goroutine
// permitted to drive the timeout transition.
func (r *Round) countdown(ctx context.Context) {
	defer r.wg.Done()
	remaining := r.budget
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	r.emit(TickEvent{RemainingSecs: remaining})
	for {
		select {
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				r.claim(SettleTimeout)
				return
			}
			r.emit(TickEvent{RemainingSecs: remaining})
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// SubmitAnswer checks a submission against the answer, case-insensitively
// and exactly. A match claims the Correct settlement; a mismatch leaves
// the round open. Submissions after settlement are ignored.
// The returned bool reports whether the submission matched.
func (r *Round) SubmitAnswer(text string) bool {
	if r.settled.Load() {
		return false
	}
	if normalizeAnswer(text) != r.answer {
		return false
	}
	r.claim(SettleCorrect)
	return true
}

// Stop force-settles the round (session abort). No outcome is recorded
// for a stopped round.
func (r *Round) Stop() {
	r.claim(SettleStopped)
}

// Settled reports whether the round has reached a terminal state.
func (r *Round) Settled() bool {
	return r.settled.Load()
}

// claim performs the exactly-once settlement transition. Exactly one
// caller wins the compare-and-swap; a submission and a timeout arriving in
// the same instant can never both count.
func (r *Round) claim(reason SettleReason) bool {
	if !r.settled.CompareAndSwap(false, true) {
		return false
	}
	close(r.done)
	if r.cancel != nil {
		r.cancel()
	}
	r.emit(SettledEvent{Reason: reason, Elapsed: time.Since(r.started)})
	return true
}

// Shutdown joins both workers with a bounded wait. A worker that misses
// the bound is abandoned rather than blocking teardown; the caller logs
// the returned ErrJoinTimeout and proceeds.
func (r *Round) Shutdown(joinTimeout time.Duration) error {
	r.claim(SettleStopped)

	joined := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
		return nil
	case <-time.After(joinTimeout):
		return ErrJoinTimeout
	}
}

// emit delivers an event without ever blocking a worker. The channel is
// buffered well past one round's event volume; if a consumer has wedged,
// dropping a tick beats deadlocking settlement.
func (r *Round) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}

func (r *Round) isDone(ctx context.Context) bool {
	select {
	case <-r.done:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
