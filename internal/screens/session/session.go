// Package session is the screen that drives a dictation run: it starts a
// round per word, relays worker events into the update loop, and settles
// scores, reviews and unlocks when the run ends.
package session

import (
	"context"
	"log"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/arnvid/diktat/internal/audio"
	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/chapters"
	"github.com/arnvid/diktat/internal/router"
	"github.com/arnvid/diktat/internal/screen"
	"github.com/arnvid/diktat/internal/screens/summary"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/spacedrep"
	"github.com/arnvid/diktat/internal/stats"
	"github.com/arnvid/diktat/internal/store"
	"github.com/arnvid/diktat/internal/translate"
	"github.com/arnvid/diktat/internal/ui/components"
	"github.com/arnvid/diktat/internal/ui/layout"
)

// joinTimeout bounds how long teardown waits for round workers.
const joinTimeout = 2 * time.Second

// revealInterval is the cadence of the letter-by-letter hint.
const revealInterval = 300 * time.Millisecond

// Deps carries everything a session needs. Optional fields may be nil;
// the session degrades rather than failing.
type Deps struct {
	Config     sess.Config
	Catalog    *catalog.Catalog
	Scheduler  *spacedrep.Scheduler
	Stats      *stats.Recorder
	Chapters   *chapters.Manager
	Events     *store.EventLog
	Translator translate.Translator
	Player     sess.Player
	Feedback   *audio.Feedback

	// LoadCatalog resolves the word catalog for a chapter folder. When
	// nil, or when Config.Chapter is empty, Catalog is used as-is.
	LoadCatalog func(chapter string) (*catalog.Catalog, error)
}

// Screen runs one dictation session.
type Screen struct {
	deps  Deps
	state *sess.State
	round *sess.Round

	input         components.TextInput
	remainingSecs int
	roundStarted  time.Time
	audioNote     string

	reveal    *sess.Reveal
	revealing bool
	hintText  string

	showingFeedback    bool
	lastCorrect        bool
	lastAnswer         string
	lastTranslation    string
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.HeartsProvider = (*Screen)(nil)

// New creates a session screen with injected dependencies.
func New(deps Deps) *Screen {
	return &Screen{
		deps:  deps,
		input: components.NewTextInput("Skriv ordet du hører...", 40),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.initSession(), s.input.Init())
}

func (s *Screen) Title() string {
	if s.deps.Config.Mode == sess.ModeAction {
		return "Action"
	}
	return "Diktat"
}

// Hearts exposes the remaining hint budget for the header. Outside
// action mode there is no budget to show.
func (s *Screen) Hearts() int {
	if s.state == nil || s.deps.Config.Mode != sess.ModeAction {
		return -1
	}
	return s.state.Hearts
}

// HandlesEsc keeps Esc inside the screen so a session ends through the
// quit confirmation rather than an app-level pop.
func (s *Screen) HandlesEsc() bool {
	return true
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Repeat audio"},
	}
	if s.deps.Config.Mode == sess.ModeAction {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+H", Description: "Hint"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	return hints
}

// initSession builds the plan off the update loop.
func (s *Screen) initSession() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		cat := deps.Catalog
		if deps.Config.Chapter != "" && deps.LoadCatalog != nil {
			loaded, err := deps.LoadCatalog(deps.Config.Chapter)
			if err != nil {
				return sessionInitMsg{Err: err}
			}
			cat = loaded
		}

		planner := sess.NewPlanner(cat, rand.New(rand.NewSource(time.Now().UnixNano())))

		var plan *sess.Plan
		var err error
		if deps.Config.Mode == sess.ModeAction {
			plan, err = planner.BuildAction()
		} else {
			var due map[string]bool
			if deps.Scheduler != nil {
				due = deps.Scheduler.DueItems(time.Now())
			}
			plan, err = planner.BuildPractice(deps.Config.Difficulty, deps.Config.TargetSize, due)
		}
		if err != nil {
			return sessionInitMsg{Err: err}
		}

		state := sess.NewState(uuid.New().String(), deps.Config, plan, time.Now())
		return sessionInitMsg{State: state}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.state = msg.State
		return s, s.startRound()

	case roundEventMsg:
		return s.handleRoundEvent(msg.Event)

	case roundChannelClosedMsg:
		return s, nil

	case revealTickMsg:
		return s.handleRevealTick()

	case sessionEndMsg:
		return s.endSession()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state != nil && !s.showingFeedback && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// startRound spins up workers for the current word and begins relaying
// their events.
func (s *Screen) startRound() tea.Cmd {
	item, ok := s.state.CurrentItem()
	if !ok {
		return func() tea.Msg { return sessionEndMsg{} }
	}

	budget := s.roundBudget()
	s.round = sess.NewRound(item, budget, s.deps.Config.RepeatInterval, s.deps.Player)
	s.remainingSecs = budget
	s.roundStarted = time.Now()
	s.audioNote = ""
	s.reveal = sess.NewReveal(item.ID)
	s.revealing = false
	s.hintText = ""
	s.input.Reset()

	s.round.Start(context.Background())
	return s.waitForRoundEvent()
}

func (s *Screen) roundBudget() int {
	if s.deps.Config.Mode == sess.ModeAction {
		return s.state.Clock.RoundBudgetSecs(s.state.CurrentTier())
	}
	return int(s.deps.Config.PracticeBudget.Seconds())
}

// waitForRoundEvent relays one worker event into the update loop.
func (s *Screen) waitForRoundEvent() tea.Cmd {
	round := s.round
	return func() tea.Msg {
		ev, ok := <-round.Events()
		if !ok {
			return roundChannelClosedMsg{}
		}
		return roundEventMsg{Event: ev}
	}
}

func (s *Screen) handleRoundEvent(ev sess.Event) (screen.Screen, tea.Cmd) {
	if s.state == nil || s.round == nil {
		return s, nil
	}

	switch ev := ev.(type) {
	case sess.TickEvent:
		s.remainingSecs = ev.RemainingSecs
		return s, s.waitForRoundEvent()

	case sess.AudioErrorEvent:
		log.Printf("session: audio: %v", ev.Err)
		s.audioNote = "Lyd utilgjengelig for dette ordet"
		return s, s.waitForRoundEvent()

	case sess.SettledEvent:
		if ev.Reason == sess.SettleTimeout {
			return s.settleTimeout()
		}
		// Correct settlements were already applied on the submit path;
		// stopped rounds are handled by teardown.
		return s, nil
	}
	return s, s.waitForRoundEvent()
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	if s.showingFeedback {
		return s.nextRound()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	case "ctrl+r":
		return s, s.replayAudio()
	case "ctrl+h":
		return s.startHint()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer checks the typed word against the active round. A wrong
// submission keeps the round open but forfeits the word's points; in
// practice mode it also starts spelling out the correct answer while
// the countdown keeps running.
func (s *Screen) submitAnswer() (screen.Screen, tea.Cmd) {
	if s.round == nil || s.round.Settled() {
		return s, nil
	}
	text := s.input.Value()
	if text == "" {
		return s, nil
	}

	item := s.round.Item()
	firstAttempt := s.state.MarkAttempt(item.ID)

	if !s.round.SubmitAnswer(text) {
		s.input.Submit(false)
		s.deps.Feedback.Play(audio.CueIncorrect)
		if s.deps.Config.Mode == sess.ModeAction {
			return s, nil
		}
		return s, s.startReveal()
	}

	// Correct: the submit path applies the outcome; the settled event
	// from the workers is informational.
	timeMs := int(time.Since(s.roundStarted).Milliseconds())
	rec := sess.AnswerRecord{
		Word:        item.ID,
		Translation: s.translationFor(item),
		Submitted:   text,
	}
	s.state.ApplyCorrect(rec, firstAttempt)
	if s.deps.Config.Mode == sess.ModeAction {
		s.state.Clock.Credit(s.round.BudgetSecs())
	}
	s.recordOutcome(item, text, true, false, timeMs)
	s.deps.Feedback.Play(audio.CueCorrect)

	s.input.Submit(true)
	s.showingFeedback = true
	s.lastCorrect = true
	s.lastAnswer = item.ID
	s.lastTranslation = rec.Translation
	return s, nil
}

func (s *Screen) settleTimeout() (screen.Screen, tea.Cmd) {
	item := s.round.Item()
	timeMs := int(time.Since(s.roundStarted).Milliseconds())

	rec := sess.AnswerRecord{
		Word:        item.ID,
		Translation: s.translationFor(item),
	}
	s.state.ApplyTimeout(rec)
	s.recordOutcome(item, sess.TimeoutSentinel, false, true, timeMs)
	s.deps.Feedback.Play(audio.CueIncorrect)

	s.showingFeedback = true
	s.lastCorrect = false
	s.lastAnswer = item.ID
	s.lastTranslation = rec.Translation
	return s, nil
}

// startHint reveals the word letter by letter at the cost of a heart.
// Hints exist only in action mode; practice mode reveals the answer on
// a miss instead. Submitting after a reveal still counts as a first
// attempt.
func (s *Screen) startHint() (screen.Screen, tea.Cmd) {
	if s.deps.Config.Mode != sess.ModeAction {
		return s, nil
	}
	if s.revealing || s.round == nil || s.round.Settled() {
		return s, nil
	}
	if !s.state.SpendHeart() {
		return s, nil
	}
	return s, s.startReveal()
}

// startReveal begins spelling out the current word, or rewinds an
// in-flight reveal after another miss. The tick chain is started only
// when one is not already running.
func (s *Screen) startReveal() tea.Cmd {
	s.reveal.Restart()
	s.hintText = ""
	if s.revealing {
		return nil
	}
	s.revealing = true
	return revealTick()
}

func (s *Screen) handleRevealTick() (screen.Screen, tea.Cmd) {
	if !s.revealing || s.reveal == nil {
		return s, nil
	}
	frame, ok := s.reveal.Next()
	s.hintText = frame
	if !ok {
		s.revealing = false
		return s, nil
	}
	return s, revealTick()
}

// replayAudio plays the current word once more, outside the repeat loop.
func (s *Screen) replayAudio() tea.Cmd {
	if s.deps.Player == nil || s.round == nil {
		return nil
	}
	item := s.round.Item()
	player := s.deps.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := player.Play(ctx, item.AudioFile); err != nil {
			return roundEventMsg{Event: sess.AudioErrorEvent{Err: err}}
		}
		return roundChannelClosedMsg{}
	}
}

// nextRound tears down the settled round and advances.
func (s *Screen) nextRound() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.shutdownRound()

	if !s.state.Advance() {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, s.startRound()
}

func (s *Screen) shutdownRound() {
	if s.round == nil {
		return
	}
	if err := s.round.Shutdown(joinTimeout); err != nil {
		log.Printf("session: %v", err)
	}
	s.round = nil
}

// recordOutcome persists one settled word: review schedule and the
// history log. Both are best-effort. The schedule keys on the
// settlement itself; earlier typos cost points, not the interval.
func (s *Screen) recordOutcome(item catalog.Item, submitted string, correct, timeout bool, timeMs int) {
	if s.deps.Scheduler != nil {
		if err := s.deps.Scheduler.RecordOutcome(item.ID, correct, time.Now()); err != nil {
			log.Printf("session: record review: %v", err)
		}
	}
	if s.deps.Events != nil {
		err := s.deps.Events.AppendAnswer(context.Background(), store.AnswerEvent{
			SessionID: s.state.ID,
			Word:      item.ID,
			Tier:      string(s.state.CurrentTier()),
			Submitted: submitted,
			Correct:   correct,
			Timeout:   timeout,
			TimeMs:    timeMs,
		})
		if err != nil {
			log.Printf("session: log answer: %v", err)
		}
	}
}

// endSession freezes the state, persists aggregates and swaps in the
// summary screen.
func (s *Screen) endSession() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.shutdownRound()
	s.state.Finish(time.Now())
	sum := sess.BuildSummary(s.state)

	ctx := context.Background()
	if s.deps.Stats != nil && sum.TotalWords > 0 {
		tier := sum.Difficulty
		if sum.Mode == sess.ModeAction {
			// Attribute an action run to the tier block it reached.
			tier = s.state.CurrentTier()
		}
		if err := s.deps.Stats.RecordSession(tier, sum.TotalWords, sum.CorrectWords, time.Now()); err != nil {
			log.Printf("session: record stats: %v", err)
		}
	}

	var unlocked []string
	if s.deps.Chapters != nil && sum.Chapter != "" && sum.TotalWords > 0 {
		if err := s.deps.Chapters.RecordSessionResult(sum.Chapter, sum.Accuracy, time.Now()); err != nil {
			log.Printf("session: record chapter: %v", err)
		}
		var err error
		unlocked, err = s.deps.Chapters.MaybeUnlockNext(sum.Accuracy)
		if err != nil {
			log.Printf("session: unlock chapters: %v", err)
		}
	}

	if s.deps.Events != nil {
		err := s.deps.Events.AppendSession(ctx, store.SessionEvent{
			SessionID:    sum.SessionID,
			Mode:         string(sum.Mode),
			Difficulty:   string(sum.Difficulty),
			Chapter:      sum.Chapter,
			TotalWords:   sum.TotalWords,
			CorrectWords: sum.CorrectWords,
			Score:        sum.Score,
			Accuracy:     sum.Accuracy,
			StartedAt:    sum.StartedAt,
			EndedAt:      sum.EndedAt,
		})
		if err != nil {
			log.Printf("session: log session: %v", err)
		}
	}

	sumScreen := summary.New(sum, unlocked)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sumScreen}
	}
}

func (s *Screen) translationFor(item catalog.Item) string {
	if item.Translation != "" {
		return item.Translation
	}
	if s.deps.Translator == nil {
		return ""
	}
	return s.deps.Translator.Translate(item.ID)
}

func revealTick() tea.Cmd {
	return tea.Tick(revealInterval, func(t time.Time) tea.Msg {
		return revealTickMsg(t)
	})
}
