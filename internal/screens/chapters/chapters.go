// Package chapters lets the learner browse chapters and pick the active
// one. Locked chapters are listed but cannot be selected.
package chapters

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/chapters"
	"github.com/arnvid/diktat/internal/router"
	"github.com/arnvid/diktat/internal/screen"
	"github.com/arnvid/diktat/internal/ui/layout"
	"github.com/arnvid/diktat/internal/ui/theme"
)

// Screen lists chapters with their progress.
type Screen struct {
	manager  *chapters.Manager
	list     []chapters.Chapter
	selected int
	note     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the chapter browser.
func New(manager *chapters.Manager) *Screen {
	s := &Screen{manager: manager, list: manager.Chapters()}
	for i, ch := range s.list {
		if ch.ID == manager.Current() {
			s.selected = i
			break
		}
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Kapitler"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
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
		s.note = ""
	case "down", "j":
		if s.selected < len(s.list)-1 {
			s.selected++
		}
		s.note = ""
	case "enter":
		if len(s.list) == 0 {
			return s, nil
		}
		ch := s.list[s.selected]
		if err := s.manager.SetCurrent(ch.ID); err != nil {
			s.note = fmt.Sprintf("Lås opp med %d%% først", ch.RequiredScore)
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	for i, ch := range s.list {
		marker := "  "
		if i == s.selected {
			marker = "▸ "
		}

		status := "🔒"
		if ch.Completed {
			status = "✓"
		} else if ch.Unlocked {
			status = "○"
		}

		line := fmt.Sprintf("%s%s %s", marker, status, ch.Name)
		if ch.Attempts > 0 {
			line += fmt.Sprintf("   beste: %.0f%%  (%d forsøk)", ch.BestScore, ch.Attempts)
		}
		if !ch.Unlocked {
			line += fmt.Sprintf("   krever %d%%", ch.RequiredScore)
		}
		if ch.ID == s.manager.Current() {
			line += "   (aktiv)"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		case !ch.Unlocked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case ch.Completed:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.note))
	}

	return b.String()
}
