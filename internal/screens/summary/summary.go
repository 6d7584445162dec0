// Package summary shows the results of a finished dictation session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/router"
	"github.com/arnvid/diktat/internal/screen"
	"github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/ui/layout"
	"github.com/arnvid/diktat/internal/ui/theme"
)

// Screen displays the session summary.
type Screen struct {
	summary  session.Summary
	unlocked []string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen. unlocked lists chapters this session
// opened up, if any.
func New(summary session.Summary, unlocked []string) *Screen {
	return &Screen{summary: summary, unlocked: unlocked}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Resultat"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	title := "Økten er ferdig!"
	titleColor := theme.Primary
	if sum.GameOver {
		title = "GAME OVER"
		titleColor = theme.Error
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(titleColor).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	dur := sum.EndedAt.Sub(sum.StartedAt)
	mins := int(dur.Minutes())
	secs := int(dur.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Varighet: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Ord: %d        Riktige: %d        Poeng: %d        Treff: %.0f%%",
		sum.TotalWords, sum.CorrectWords, sum.Score, sum.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(sum.Correct) > 0 {
		b.WriteString(sectionHeader(width, divider, "Riktige ord"))
		for _, rec := range sum.Correct {
			line := "  " + rec.Word
			if rec.Translation != "" {
				line += "  —  " + rec.Translation
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Success).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.Incorrect) > 0 {
		b.WriteString(sectionHeader(width, divider, "Å øve på"))
		for _, rec := range sum.Incorrect {
			line := fmt.Sprintf("  %s  (du skrev: %s)", rec.Word, rec.Submitted)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, ch := range s.unlocked {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Nytt kapittel låst opp: %s", ch)))
		b.WriteString("\n")
	}

	return b.String()
}

func sectionHeader(width int, divider, label string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) +
		"\n\n"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
