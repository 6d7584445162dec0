// Package config provides the TOML configuration file and its merge
// into session settings.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/session"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "not set" from an explicit zero.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
	Audio   AudioConfig   `toml:"audio"`
	Remote  RemoteConfig  `toml:"remote"`
}

// SessionConfig maps session-related settings.
type SessionConfig struct {
	Difficulty      *string `toml:"difficulty"`
	Words           *int    `toml:"words"`
	PracticeSecs    *int    `toml:"practice-secs"`
	RepeatSecs      *int    `toml:"repeat-secs"`
	Hearts          *int    `toml:"hearts"`
	ShowTranslation *bool   `toml:"show-translation"`
}

// AudioConfig maps playback settings.
type AudioConfig struct {
	Dir      *string `toml:"dir"`
	Feedback *bool   `toml:"feedback"`
}

// RemoteConfig maps translation backend settings.
type RemoteConfig struct {
	Offline *bool `toml:"offline"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays set file values onto session defaults. Invalid values
// are ignored rather than failing startup.
func (fc FileConfig) Apply(cfg session.Config) session.Config {
	if v := fc.Session.Difficulty; v != nil {
		switch catalog.Tier(*v) {
		case catalog.TierEasy, catalog.TierMedium, catalog.TierHard:
			cfg.Difficulty = catalog.Tier(*v)
		}
	}
	if v := fc.Session.Words; v != nil && *v > 0 {
		cfg.TargetSize = *v
	}
	if v := fc.Session.PracticeSecs; v != nil && *v > 0 {
		cfg.PracticeBudget = time.Duration(*v) * time.Second
	}
	if v := fc.Session.RepeatSecs; v != nil && *v > 0 {
		cfg.RepeatInterval = time.Duration(*v) * time.Second
	}
	if v := fc.Session.Hearts; v != nil && *v > 0 {
		cfg.HeartsMax = *v
	}
	if v := fc.Session.ShowTranslation; v != nil {
		cfg.ShowTranslation = *v
	}
	return cfg
}
