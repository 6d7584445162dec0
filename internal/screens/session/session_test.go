package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/router"
	"github.com/arnvid/diktat/internal/screen"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/spacedrep"
)

// silentPlayer satisfies the player without touching any audio backend.
type silentPlayer struct{}

func (silentPlayer) Play(ctx context.Context, ref string) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(mode sess.Mode) *Screen {
	cfg := sess.Defaults()
	cfg.Mode = mode
	cfg.RepeatInterval = time.Hour // keep the audio worker quiet
	return New(Deps{
		Config: cfg,
		Player: silentPlayer{},
	})
}

func setupActiveRound(s *Screen) {
	plan := &sess.Plan{
		Mode: s.deps.Config.Mode,
		Items: []catalog.Item{
			{ID: "kaffe", AudioFile: "kaffe.mp3", Tier: catalog.TierEasy},
			{ID: "skole", AudioFile: "skole.mp3", Tier: catalog.TierEasy},
		},
	}
	s.state = sess.NewState("test-session", s.deps.Config, plan, time.Now())
	s.round = sess.NewRound(plan.Items[0], 20, s.deps.Config.RepeatInterval, s.deps.Player)
	s.round.Start(context.Background())
	s.roundStarted = time.Now()
	s.reveal = sess.NewReveal(plan.Items[0].ID)
}

func teardown(s *Screen) {
	if s.round != nil {
		_ = s.round.Shutdown(time.Second)
	}
}

func TestSessionScreen_Title(t *testing.T) {
	if got := testScreen(sess.ModePractice).Title(); got != "Diktat" {
		t.Errorf("Title = %q, want %q", got, "Diktat")
	}
	if got := testScreen(sess.ModeAction).Title(); got != "Action" {
		t.Errorf("Title = %q, want %q", got, "Action")
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	s := testScreen(sess.ModePractice)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestSessionScreen_View_Error(t *testing.T) {
	s := testScreen(sess.ModePractice)
	s.errMsg = "test error"
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for error state")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*Screen)
	if !ss.showingQuitConfirm {
		t.Error("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*Screen)
	if ss.showingQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Errorf("expected sessionEndMsg, got %T", cmd())
	}
}

func TestSessionScreen_CorrectSubmit(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kaffe")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	if !ss.showingFeedback {
		t.Error("expected feedback after a correct submit")
	}
	if !ss.lastCorrect {
		t.Error("expected the answer to count as correct")
	}
	if ss.state.Score != sess.PointsPerWord {
		t.Errorf("Score = %d, want %d", ss.state.Score, sess.PointsPerWord)
	}
}

func TestSessionScreen_WrongSubmitKeepsRoundOpen(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kafe")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	if ss.showingFeedback {
		t.Error("a wrong submission must not end the round")
	}
	if ss.round.Settled() {
		t.Error("round should stay open after a wrong submission")
	}

	// A later correct submission settles, but the forfeited first
	// attempt means no points.
	ss.input.Model.SetValue("kaffe")
	scr, _ = ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*Screen)
	if !ss.lastCorrect {
		t.Error("expected the retry to count as correct")
	}
	if ss.state.Score != 0 {
		t.Errorf("Score = %d, want 0 after a forfeited first attempt", ss.state.Score)
	}
}

func TestSessionScreen_WrongSubmitStartsReveal(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kafe")

	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	if !ss.revealing {
		t.Error("expected the answer reveal to start on a miss")
	}
	if cmd == nil {
		t.Fatal("expected a reveal tick command")
	}
	if got := ss.input.Value(); got != "" {
		t.Errorf("input after rejected submit = %q, want empty", got)
	}
}

func TestSessionScreen_RepeatMissRewindsReveal(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kafe")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	// Let a few letters come out before missing again.
	scr, _ = ss.Update(revealTickMsg(time.Now()))
	ss = scr.(*Screen)
	scr, _ = ss.Update(revealTickMsg(time.Now()))
	ss = scr.(*Screen)
	if ss.hintText != "ka" {
		t.Fatalf("hintText = %q, want %q", ss.hintText, "ka")
	}

	ss.input.Model.SetValue("kaffi")
	scr, cmd := ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*Screen)

	if ss.hintText != "" {
		t.Errorf("hintText after second miss = %q, want rewound", ss.hintText)
	}
	if cmd != nil {
		t.Error("a running reveal must not spawn a second tick chain")
	}
	scr, _ = ss.Update(revealTickMsg(time.Now()))
	ss = scr.(*Screen)
	if ss.hintText != "k" {
		t.Errorf("hintText = %q, want restart from the first letter", ss.hintText)
	}
}

func TestSessionScreen_NoRevealOnActionMiss(t *testing.T) {
	s := testScreen(sess.ModeAction)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kafe")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	if ss.revealing {
		t.Error("an action-mode miss must not reveal the answer")
	}
}

func TestSessionScreen_HintIgnoredInPracticeMode(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	hearts := s.state.Hearts

	var scr screen.Screen = s
	scr, cmd := scr.Update(tea.KeyPressMsg{Code: 'h', Mod: tea.ModCtrl})
	ss := scr.(*Screen)

	if ss.revealing {
		t.Error("manual hints are an action-mode affordance")
	}
	if cmd != nil {
		t.Error("expected no command for a practice-mode hint")
	}
	if ss.state.Hearts != hearts {
		t.Errorf("Hearts = %d, want unchanged %d", ss.state.Hearts, hearts)
	}
}

func TestSessionScreen_RetryScheduledAsCorrect(t *testing.T) {
	sched := spacedrep.NewScheduler(filepath.Join(t.TempDir(), "reviews.json"))
	now := time.Now()
	if err := sched.RecordOutcome("kaffe", true, now); err != nil {
		t.Fatal(err)
	}
	if err := sched.RecordOutcome("kaffe", true, now); err != nil {
		t.Fatal(err)
	}
	if got := sched.Record("kaffe").IntervalDays; got != 2 {
		t.Fatalf("seeded IntervalDays = %d, want 2", got)
	}

	s := testScreen(sess.ModePractice)
	s.deps.Scheduler = sched
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kafe")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	ss.input.Model.SetValue("kaffe")
	scr, _ = ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*Screen)

	if !ss.lastCorrect {
		t.Fatal("expected the retry to settle correct")
	}
	if got := sched.Record("kaffe").IntervalDays; got != 4 {
		t.Errorf("IntervalDays = %d, want 4: the settlement drives the schedule", got)
	}
}

func TestSessionScreen_FeedbackAdvances(t *testing.T) {
	s := testScreen(sess.ModePractice)
	setupActiveRound(s)
	defer teardown(s)

	s.input.Model.SetValue("kaffe")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*Screen)

	scr, _ = ss.Update(keyPress(' '))
	ss = scr.(*Screen)
	if ss.showingFeedback {
		t.Error("expected feedback to be dismissed")
	}
	if got, _ := ss.state.CurrentItem(); got.ID != "skole" {
		t.Errorf("current item = %q, want %q", got.ID, "skole")
	}
}

func TestSessionScreen_ActionHintCostsHeart(t *testing.T) {
	s := testScreen(sess.ModeAction)
	setupActiveRound(s)
	defer teardown(s)

	s.reveal = sess.NewReveal("kaffe")
	hearts := s.state.Hearts

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: 'h', Mod: tea.ModCtrl})
	ss := scr.(*Screen)

	if ss.state.Hearts != hearts-1 {
		t.Errorf("Hearts = %d, want %d", ss.state.Hearts, hearts-1)
	}
	if !ss.revealing {
		t.Error("expected the reveal to start")
	}
}

func TestSessionScreen_HandlesEsc(t *testing.T) {
	if !testScreen(sess.ModePractice).HandlesEsc() {
		t.Error("session screen must consume Esc itself")
	}
}

func TestSessionScreen_EndWithoutState(t *testing.T) {
	s := testScreen(sess.ModePractice)
	_, cmd := s.Update(sessionEndMsg{})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
