package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnvid/diktat/internal/catalog"
)

type fakePlayer struct {
	mu    sync.Mutex
	plays int
	err   error
}

func (f *fakePlayer) Play(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return f.err
}

func (f *fakePlayer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func testItem() catalog.Item {
	return catalog.Item{ID: "kaffe", AudioFile: "kaffe.mp3", Tier: catalog.TierEasy}
}

func drainUntilSettled(t *testing.T, r *Round, within time.Duration) SettledEvent {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case ev := <-r.Events():
			if settled, ok := ev.(SettledEvent); ok {
				return settled
			}
		case <-deadline:
			t.Fatal("round did not settle in time")
		}
	}
}

func TestSubmitCorrectSettles(t *testing.T) {
	r := NewRound(testItem(), 30, 50*time.Millisecond, &fakePlayer{})
	r.Start(context.Background())
	defer r.Shutdown(time.Second)

	assert.True(t, r.SubmitAnswer("  Kaffe "))
	ev := drainUntilSettled(t, r, time.Second)
	assert.Equal(t, SettleCorrect, ev.Reason)
}

func TestSubmitWrongLeavesRoundOpen(t *testing.T) {
	r := NewRound(testItem(), 30, 50*time.Millisecond, &fakePlayer{})
	r.Start(context.Background())
	defer r.Shutdown(time.Second)

	assert.False(t, r.SubmitAnswer("kafe"))
	assert.False(t, r.Settled())

	assert.True(t, r.SubmitAnswer("kaffe"))
	assert.True(t, r.Settled())
}

func TestCountdownTimesOut(t *testing.T) {
	r := NewRound(testItem(), 1, time.Hour, &fakePlayer{})
	r.Start(context.Background())
	defer r.Shutdown(time.Second)

	ev := drainUntilSettled(t, r, 3*time.Second)
	assert.Equal(t, SettleTimeout, ev.Reason)

	// Late submissions are ignored.
	assert.False(t, r.SubmitAnswer("kaffe"))
}

func TestSettlementIsExactlyOnce(t *testing.T) {
	// Race many submitters against Stop; exactly one terminal event may
	// come out.
	r := NewRound(testItem(), 30, time.Hour, &fakePlayer{})
	r.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.SubmitAnswer("kaffe")
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Stop()
	}()
	wg.Wait()
	require.NoError(t, r.Shutdown(time.Second))

	settledEvents := 0
	for {
		select {
		case ev := <-r.Events():
			if _, ok := ev.(SettledEvent); ok {
				settledEvents++
			}
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, settledEvents)
}

func TestAudioLoopRepeats(t *testing.T) {
	player := &fakePlayer{}
	r := NewRound(testItem(), 30, 10*time.Millisecond, player)
	r.Start(context.Background())

	require.Eventually(t, func() bool { return player.count() >= 2 },
		time.Second, 5*time.Millisecond)
	require.NoError(t, r.Shutdown(time.Second))
}

func TestAudioErrorDoesNotSettle(t *testing.T) {
	player := &fakePlayer{err: context.DeadlineExceeded}
	r := NewRound(testItem(), 30, 10*time.Millisecond, player)
	r.Start(context.Background())
	defer r.Shutdown(time.Second)

	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-r.Events():
			if _, ok := ev.(AudioErrorEvent); ok {
				assert.False(t, r.Settled(), "audio failure must not settle the round")
				return
			}
		case <-deadline:
			t.Fatal("no audio error event")
		}
	}
}

func TestMissingAudioSkipsLoop(t *testing.T) {
	item := catalog.Item{ID: "kaffe", Tier: catalog.TierEasy}
	r := NewRound(item, 30, 10*time.Millisecond, &fakePlayer{})
	r.Start(context.Background())

	assert.True(t, r.SubmitAnswer("kaffe"))
	require.NoError(t, r.Shutdown(time.Second))
}

func TestShutdownJoinsWorkers(t *testing.T) {
	r := NewRound(testItem(), 30, 50*time.Millisecond, &fakePlayer{})
	r.Start(context.Background())
	require.NoError(t, r.Shutdown(time.Second))
	assert.True(t, r.Settled())
}
