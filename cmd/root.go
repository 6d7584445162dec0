package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnvid/diktat/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "diktat",
	Short: "Norwegian dictation trainer",
	Long:  "Diktat — terminal trainer that drills Norwegian vocabulary by audio dictation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides DIKTAT_DATA env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to the word list and audio content directory (overrides DIKTAT_CONTENT env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using the --data flag
// (highest priority), then DIKTAT_DATA env var, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}
	return store.DefaultDataDir()
}

// resolveContentDir returns the content directory using the --content
// flag, then DIKTAT_CONTENT, then <dataDir>/content.
func resolveContentDir(cmd *cobra.Command, dataDir string) string {
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		return p
	}
	if p := os.Getenv("DIKTAT_CONTENT"); p != "" {
		return p
	}
	return filepath.Join(dataDir, "content")
}
