package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/catalog"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderRound(width)
}

// renderRound renders the active listening round.
func (s *Screen) renderRound(width int) string {
	state := s.state
	var b strings.Builder

	modeStr := "Øvelse"
	if state.Config.Mode == sess.ModeAction {
		modeStr = "Action"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", modeStr, tierLabel(state.CurrentTier())))

	timer := fmt.Sprintf("⏱ %ds", s.remainingSecs)
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if s.remainingSecs <= 3 {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Ord %d/%d  %s %d  ",
			state.CurrentIndex+1, state.Plan.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.Score,
		)) + timerStyle.Render(timer)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("🔊 Lytt og skriv ordet")
	b.WriteString(prompt)
	b.WriteString("\n\n")

	if s.audioNote != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.audioNote))
		b.WriteString("\n\n")
	}

	if s.hintText != "" {
		hint := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Hint: %s…", s.hintText))
		b.WriteString(hint)
		b.WriteString("\n\n")
	}

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Svar: " + s.input.View())
	b.WriteString(answerLine)

	return b.String()
}

// renderFeedback renders the between-rounds result overlay.
func (s *Screen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Riktig!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Tiden utløp"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Riktig ord: %s", s.lastAnswer)))
	}

	if s.state.Config.ShowTranslation && s.lastTranslation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("%s = %s", s.lastAnswer, s.lastTranslation)))
	}

	if s.state.GameOver {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("GAME OVER"))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Trykk en tast for å fortsette..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Avslutte økten?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Fremgangen din blir lagret."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Ja, avslutt"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] Nei, fortsett"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Forbereder økten...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Feil: %s\n\n  Trykk en tast for å gå tilbake.", errMsg))
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

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
