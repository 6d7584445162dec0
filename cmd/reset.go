package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnvid/diktat/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner data (reviews, stats, chapter progress, history)",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("This deletes all progress under %s. Continue? [y/N] ", dataDir)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		files := []string{
			store.ReviewFile,
			store.StatsFile,
			store.ProgressFile,
			store.EventsFile,
		}
		for _, name := range files {
			path := filepath.Join(dataDir, name)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", name, err)
			}
		}
		fmt.Println("Learner data reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
