package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arnvid/diktat/internal/router"
	"github.com/arnvid/diktat/internal/screen"
	chapterscreen "github.com/arnvid/diktat/internal/screens/chapters"
	sessionscreen "github.com/arnvid/diktat/internal/screens/session"
	"github.com/arnvid/diktat/internal/screens/settings"
	statsscreen "github.com/arnvid/diktat/internal/screens/stats"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/ui/components"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu components.Menu
	deps sessionscreen.Deps

	streakDays  int
	reviewsDue  int
	chapterName string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. deps carries everything a session needs;
// deps.Config holds the current settings and is mutated by the settings
// screen.
func New(deps sessionscreen.Deps) *HomeScreen {
	if deps.Config.Mode == "" {
		deps.Config = sess.Defaults()
	}

	h := &HomeScreen{deps: deps}
	h.refreshStats()

	items := []components.MenuItem{
		{Label: "ØV DIKTAT", Action: func() tea.Cmd {
			return h.startSession(sess.ModePractice)
		}},
		{Label: "TIDSPRESS", Action: func() tea.Cmd {
			return h.startSession(sess.ModeAction)
		}},
		{Label: "KAPITLER", Action: func() tea.Cmd {
			if h.deps.Chapters == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chapterscreen.New(h.deps.Chapters)}
			}
		}},
		{Label: "STATISTIKK", Action: func() tea.Cmd {
			if h.deps.Stats == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(h.deps.Stats.Aggregate(), h.deps.Events)}
			}
		}},
		{Label: "INNSTILLINGER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(h.deps.Config, func(cfg sess.Config) {
					h.deps.Config = cfg
				})}
			}
		}},
		{Label: "AVSLUTT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) startSession(mode sess.Mode) tea.Cmd {
	d := h.deps
	d.Config.Mode = mode
	if h.deps.Chapters != nil {
		d.Config.Chapter = h.deps.Chapters.Current()
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(d)}
	}
}

// refreshStats recomputes the dashboard numbers. Called on construction
// and every time the screen regains focus after a session.
func (h *HomeScreen) refreshStats() {
	now := time.Now()
	if h.deps.Stats != nil {
		h.streakDays = h.deps.Stats.Aggregate().CurrentStreak
	}
	if h.deps.Scheduler != nil {
		h.reviewsDue = h.deps.Scheduler.DueCount(now)
	}
	h.chapterName = "Alle ord"
	if h.deps.Chapters != nil {
		if cur := h.deps.Chapters.Current(); cur != "" {
			h.chapterName = chapterLabel(cur)
			for _, ch := range h.deps.Chapters.Chapters() {
				if ch.ID == cur && ch.Name != "" {
					h.chapterName = ch.Name
				}
			}
		}
	}
}

func chapterLabel(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ScreenFocusedMsg); ok {
		h.refreshStats()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(
		h.streakDays, h.reviewsDue, h.chapterName, cw, compact))

	if compact {
		sections = append(sections, renderHomeMenuCompact(
			h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderHomeMenu(
			h.menu.Labels(), h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return renderFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Diktat"
}
