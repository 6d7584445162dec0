package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/ui/theme"
)

// PassMark is the accuracy ratio rendered as passing: the same share
// of correct answers that completes a chapter.
const PassMark = 0.7

// AccuracyBar is a labelled horizontal accuracy gauge. The fill turns
// green at the pass mark and stays amber below it.
type AccuracyBar struct {
	Label string
	Ratio float64
	Width int
}

// NewAccuracyBar creates an accuracy gauge. ratio is clamped to [0, 1].
func NewAccuracyBar(label string, ratio float64, width int) AccuracyBar {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return AccuracyBar{Label: label, Ratio: ratio, Width: width}
}

// View renders the gauge as "Label ████░░ 67%".
func (b AccuracyBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("%-8s", b.Label))

	// " 100%" plus the separating spaces
	percentWidth := 6
	barWidth := b.Width - lipgloss.Width(label) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*b.Ratio + 0.5)
	if filled > barWidth {
		filled = barWidth
	}

	fillColor := theme.Accent
	if b.Ratio >= PassMark {
		fillColor = theme.Success
	}

	bar := lipgloss.NewStyle().
		Foreground(fillColor).
		Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().
			Foreground(theme.Border).
			Render(strings.Repeat("░", barWidth-filled))

	percent := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %3d%%", int(b.Ratio*100+0.5)))

	return label + " " + bar + percent
}
