// Package audio resolves and plays word recordings through an external
// command-line player. Playback problems degrade the session, never
// abort it.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrAssetMissing reports a word without a playable recording.
var ErrAssetMissing = fmt.Errorf("audio asset missing")

// ErrNoPlayer reports that no supported playback command was found.
var ErrNoPlayer = fmt.Errorf("no audio player available")

// playerCommands lists supported playback commands in preference order
// with the flags that make them exit after one file, silently.
var playerCommands = []struct {
	name string
	args []string
}{
	{"afplay", nil},
	{"mpg123", []string{"-q"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"paplay", nil},
}

// Library resolves audio references against content root directories.
type Library struct {
	roots []string
}

// NewLibrary creates a resolver over the given root directories,
// searched in order.
func NewLibrary(roots ...string) *Library {
	return &Library{roots: roots}
}

// Resolve maps an audio reference to an existing file path.
func (l *Library) Resolve(ref string) (string, error) {
	for _, root := range l.roots {
		path := filepath.Join(root, ref)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrAssetMissing, ref)
}

// ExecPlayer plays files by shelling out to the first available
// playback command.
type ExecPlayer struct {
	library *Library
	command string
	args    []string
}

// NewExecPlayer probes for a playback command and wires it to the
// library. Returns ErrNoPlayer when nothing usable is installed.
func NewExecPlayer(library *Library) (*ExecPlayer, error) {
	for _, candidate := range playerCommands {
		if path, err := exec.LookPath(candidate.name); err == nil {
			return &ExecPlayer{library: library, command: path, args: candidate.args}, nil
		}
	}
	return nil, ErrNoPlayer
}

// Play resolves and plays one recording, blocking until playback ends
// or ctx is cancelled.
func (p *ExecPlayer) Play(ctx context.Context, ref string) error {
	path, err := p.library.Resolve(ref)
	if err != nil {
		return err
	}
	args := append(append([]string(nil), p.args...), path)
	cmd := exec.CommandContext(ctx, p.command, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play %s: %w", ref, err)
	}
	return nil
}

// NopPlayer satisfies the player interface without producing sound.
// Used in tests and when no playback command exists.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context, ref string) error { return nil }
