package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnvid/diktat/internal/app"
	"github.com/arnvid/diktat/internal/audio"
	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/chapters"
	"github.com/arnvid/diktat/internal/config"
	sessionscreen "github.com/arnvid/diktat/internal/screens/session"
	sess "github.com/arnvid/diktat/internal/session"
	"github.com/arnvid/diktat/internal/spacedrep"
	"github.com/arnvid/diktat/internal/stats"
	"github.com/arnvid/diktat/internal/store"
	"github.com/arnvid/diktat/internal/translate"
)

// runApp resolves all stores and content, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	contentDir := resolveContentDir(cmd, dataDir)

	// The alt screen owns stdout, so warnings go to a log file.
	logFile, err := os.OpenFile(filepath.Join(dataDir, store.LogFile),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	deps := sessionscreen.Deps{
		Config:    sess.Defaults(),
		Scheduler: spacedrep.NewScheduler(filepath.Join(dataDir, store.ReviewFile)),
		Stats:     stats.NewRecorder(filepath.Join(dataDir, store.StatsFile)),
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		log.Printf("config: %v", err)
	} else {
		deps.Config = fileCfg.Apply(deps.Config)
	}

	eventLog, err := store.OpenEventLog(filepath.Join(dataDir, store.EventsFile))
	if err != nil {
		log.Printf("event log unavailable: %v", err)
	} else {
		defer eventLog.Close()
		deps.Events = eventLog
	}

	if err := loadContent(contentDir, dataDir, &deps); err != nil {
		return err
	}

	library := audio.NewLibrary(contentDir, filepath.Join(contentDir, "audio"))
	player, err := audio.NewExecPlayer(library)
	if err != nil {
		log.Printf("audio playback unavailable: %v", err)
		deps.Player = audio.NopPlayer{}
	} else {
		deps.Player = player
		deps.Feedback = audio.NewFeedback(player)
	}

	translator := translate.NewService(translate.NewRemoteFromEnv())
	if err := translator.LoadUserDictionary(filepath.Join(dataDir, "translations.json")); err != nil {
		log.Printf("user dictionary: %v", err)
	}
	deps.Translator = translator

	firstRun := false
	if eventLog != nil {
		if n, err := eventLog.SessionCount(context.Background()); err == nil {
			firstRun = n == 0
		}
	}

	return app.Run(app.Options{Deps: deps, FirstRun: firstRun})
}

// loadContent wires the word catalog. A flat manifest takes precedence;
// otherwise the content dir is treated as a chapter tree.
func loadContent(contentDir, dataDir string, deps *sessionscreen.Deps) error {
	manifest := filepath.Join(contentDir, "manifest.txt")
	if _, err := os.Stat(manifest); err == nil {
		cat, err := catalog.LoadManifest(manifest)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		deps.Catalog = cat
		return nil
	}

	if err := catalog.SeedChapters(contentDir); err != nil {
		log.Printf("seed chapters: %v", err)
	}
	metas, err := catalog.ListChapters(contentDir)
	if err != nil || len(metas) == 0 {
		return fmt.Errorf("no word content found in %s (expected manifest.txt or chapter directories)", contentDir)
	}

	deps.Chapters = chapters.NewManager(filepath.Join(dataDir, store.ProgressFile), metas)
	deps.LoadCatalog = func(folder string) (*catalog.Catalog, error) {
		return catalog.LoadChapter(contentDir, folder)
	}

	cat, err := deps.LoadCatalog(deps.Chapters.Current())
	if err != nil {
		return fmt.Errorf("load chapter: %w", err)
	}
	deps.Catalog = cat
	return nil
}
