package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir resolves the per-user data directory in priority order:
// 1. DIKTAT_DATA environment variable
// 2. $XDG_DATA_HOME/diktat
// 3. ~/.local/share/diktat
func DefaultDataDir() (string, error) {
	if p := os.Getenv("DIKTAT_DATA"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "diktat")
	return p, os.MkdirAll(p, 0o755)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// Well-known file names inside the data directory.
const (
	ReviewFile   = "words_to_review.json"
	StatsFile    = "game_stats.json"
	ProgressFile = "chapter_progress.json"
	EventsFile   = "events.db"
	LogFile      = "diktat.log"
)
