// Package stats renders lifetime statistics: totals, per-difficulty
// accuracy, streaks and recent misses.
package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/screen"
	"github.com/arnvid/diktat/internal/stats"
	"github.com/arnvid/diktat/internal/store"
	"github.com/arnvid/diktat/internal/ui/components"
	"github.com/arnvid/diktat/internal/ui/theme"
)

const missLimit = 10

// Screen displays the aggregate statistics.
type Screen struct {
	agg    stats.Aggregate
	events *store.EventLog
	misses []store.MissRecord
}

var _ screen.Screen = (*Screen)(nil)

// missesLoadedMsg carries the recent-miss history from the event log.
type missesLoadedMsg struct {
	Misses []store.MissRecord
}

// New creates a stats screen over the given aggregate. events may be
// nil; the misses section is skipped.
func New(agg stats.Aggregate, events *store.EventLog) *Screen {
	return &Screen{agg: agg, events: events}
}

func (s *Screen) Init() tea.Cmd {
	if s.events == nil {
		return nil
	}
	events := s.events
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		misses, err := events.RecentMisses(ctx, missLimit)
		if err != nil {
			return missesLoadedMsg{}
		}
		return missesLoadedMsg{Misses: misses}
	}
}

func (s *Screen) Title() string {
	return "Statistikk"
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(missesLoadedMsg); ok {
		s.misses = m.Misses
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	agg := s.agg
	var b strings.Builder
	b.WriteString("\n")

	if agg.TotalSessions == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Ingen økter ennå. Start en diktat!")
	}

	line := fmt.Sprintf("Økter: %d        Ord: %d        Riktige: %d        Treff: %.0f%%",
		agg.TotalSessions, agg.TotalWordsAttempted, agg.TotalCorrect, agg.OverallAccuracy())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(line))
	b.WriteString("\n\n")

	streakLine := fmt.Sprintf("★ Rekke: %d dager        Lengste: %d dager",
		agg.CurrentStreak, agg.LongestStreak)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(streakLine))
	b.WriteString("\n\n")

	barWidth := min(width-20, 50)
	for _, tier := range catalog.Tiers {
		tc := agg.DifficultyStats[string(tier)]
		if tc.Attempted == 0 {
			continue
		}
		pct := agg.TierAccuracy(tier) / 100
		bar := components.NewAccuracyBar(tierLabel(tier), pct, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if len(s.misses) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Siste feil"))
		b.WriteString("\n")
		for _, m := range s.misses {
			line := fmt.Sprintf("  %-20s du skrev: %s", m.Word, m.Submitted)
			if m.Timeout {
				line = fmt.Sprintf("  %-20s (tiden utløp)", m.Word)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func tierLabel(t catalog.Tier) string {
	switch t {
	case catalog.TierMedium:
		return "Middels  "
	case catalog.TierHard:
		return "Vanskelig"
	default:
		return "Lett     "
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
