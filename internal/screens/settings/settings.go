// Package settings edits the per-session options: difficulty, session
// length and translation display.
package settings

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/screen"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/ui/layout"
	"github.com/arnvid/diktat/internal/ui/theme"
)

const (
	rowDifficulty = iota
	rowWords
	rowPracticeTime
	rowTranslation
	rowCount
)

// Screen edits session settings. Changes are pushed through apply so
// the owner sees them immediately.
type Screen struct {
	cfg      sess.Config
	apply    func(sess.Config)
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the settings editor.
func New(cfg sess.Config, apply func(sess.Config)) *Screen {
	return &Screen{cfg: cfg, apply: apply}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Innstillinger"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}
	case "left", "h":
		s.adjust(-1)
	case "right", "l", "enter", " ":
		s.adjust(1)
	}
	return s, nil
}

func (s *Screen) adjust(dir int) {
	switch s.selected {
	case rowDifficulty:
		s.cfg.Difficulty = cycleTier(s.cfg.Difficulty, dir)
	case rowWords:
		n := s.cfg.TargetSize + 5*dir
		if n >= 5 && n <= 50 {
			s.cfg.TargetSize = n
		}
	case rowPracticeTime:
		d := s.cfg.PracticeBudget + time.Duration(5*dir)*time.Second
		if d >= 10*time.Second && d <= 60*time.Second {
			s.cfg.PracticeBudget = d
		}
	case rowTranslation:
		s.cfg.ShowTranslation = !s.cfg.ShowTranslation
	}
	if s.apply != nil {
		s.apply(s.cfg)
	}
}

func cycleTier(t catalog.Tier, dir int) catalog.Tier {
	order := catalog.Tiers
	for i, tier := range order {
		if tier == t {
			next := (i + dir + len(order)) % len(order)
			return order[next]
		}
	}
	return catalog.TierEasy
}

func (s *Screen) View(width, height int) string {
	rows := []struct {
		label string
		value string
	}{
		{"Vanskelighetsgrad", tierLabel(s.cfg.Difficulty)},
		{"Ord per økt", fmt.Sprintf("%d", s.cfg.TargetSize)},
		{"Tid per ord", fmt.Sprintf("%ds", int(s.cfg.PracticeBudget.Seconds()))},
		{"Vis oversettelse", onOff(s.cfg.ShowTranslation)},
	}

	var b strings.Builder
	b.WriteString("\n\n")
	for i, row := range rows {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			marker = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-22s ◂ %s ▸", marker, row.label, row.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func tierLabel(t catalog.Tier) string {
	switch t {
	case catalog.TierMedium:
		return "Middels"
	case catalog.TierHard:
		return "Vanskelig"
	default:
		return "Lett"
	}
}

func onOff(v bool) string {
	if v {
		return "På"
	}
	return "Av"
}
