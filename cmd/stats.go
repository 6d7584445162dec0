package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/stats"
	"github.com/arnvid/diktat/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime dictation statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return err
		}

		agg := stats.NewRecorder(filepath.Join(dataDir, store.StatsFile)).Aggregate()
		if agg.TotalSessions == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("Sessions:        %d\n", agg.TotalSessions)
		fmt.Printf("Words attempted: %d\n", agg.TotalWordsAttempted)
		fmt.Printf("Words correct:   %d\n", agg.TotalCorrect)
		fmt.Printf("Accuracy:        %.1f%%\n", agg.OverallAccuracy())
		fmt.Printf("Streak:          %d days (best %d)\n", agg.CurrentStreak, agg.LongestStreak)

		fmt.Println()
		for _, tier := range catalog.Tiers {
			tc := agg.DifficultyStats[string(tier)]
			if tc.Attempted == 0 {
				continue
			}
			fmt.Printf("%-8s %d/%d (%.1f%%)\n", tier, tc.Correct, tc.Attempted, agg.TierAccuracy(tier))
		}

		eventLog, err := store.OpenEventLog(filepath.Join(dataDir, store.EventsFile))
		if err != nil {
			return nil // stats without history is still useful
		}
		defer eventLog.Close()

		misses, err := eventLog.RecentMisses(context.Background(), 10)
		if err != nil || len(misses) == 0 {
			return nil
		}
		fmt.Println("\nRecent misses:")
		for _, m := range misses {
			if m.Timeout {
				fmt.Printf("  %-16s (time ran out)\n", m.Word)
			} else {
				fmt.Printf("  %-16s you wrote %q\n", m.Word, m.Submitted)
			}
		}
		return nil
	},
}
