package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/chapters"
	"github.com/arnvid/diktat/internal/store"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List chapters and unlock progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return err
		}
		contentDir := resolveContentDir(cmd, dataDir)

		metas, err := catalog.ListChapters(contentDir)
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}
		if len(metas) == 0 {
			fmt.Println("No chapters found in", contentDir)
			return nil
		}

		mgr := chapters.NewManager(filepath.Join(dataDir, store.ProgressFile), metas)
		current := mgr.Current()
		for _, ch := range mgr.Chapters() {
			status := "🔒"
			if ch.Completed {
				status = "✓"
			} else if ch.Unlocked {
				status = "○"
			}
			line := fmt.Sprintf("%s %-24s", status, ch.Name)
			if ch.Attempts > 0 {
				line += fmt.Sprintf("  best %.0f%% in %d attempts", ch.BestScore, ch.Attempts)
			} else if !ch.Unlocked {
				line += fmt.Sprintf("  requires %d%%", ch.RequiredScore)
			}
			if ch.ID == current {
				line += "  (active)"
			}
			fmt.Println(line)
		}
		return nil
	},
}
