package translate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu      sync.Mutex
	lookups int
	gloss   string
	err     error
}

func (f *fakeRemote) Lookup(ctx context.Context, word string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	return f.gloss, f.err
}

func TestBuiltinDictionary(t *testing.T) {
	s := NewService(nil)
	assert.Equal(t, "coffee", s.Translate("kaffe"))
	assert.Equal(t, "coffee", s.Translate("  KAFFE "))
}

func TestSubstringMatch(t *testing.T) {
	s := NewService(nil)
	got := s.Translate("kaffekopp")
	assert.Contains(t, got, "coffee")
}

func TestRemoteFillsGaps(t *testing.T) {
	remote := &fakeRemote{gloss: "meeting"}
	s := NewService(remote)

	assert.Equal(t, "meeting", s.Translate("møte"))

	// Second lookup hits the cache, not the remote.
	assert.Equal(t, "meeting", s.Translate("møte"))
	assert.Equal(t, 1, remote.lookups)
}

func TestRemoteFailureFallsBack(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("offline")}
	s := NewService(remote)

	got := s.Translate("ukjentord")
	assert.NotEmpty(t, got, "a failed lookup still yields a placeholder")
}

func TestBuiltinBeatsRemote(t *testing.T) {
	remote := &fakeRemote{gloss: "never used"}
	s := NewService(remote)

	assert.Equal(t, "coffee", s.Translate("kaffe"))
	assert.Equal(t, 0, remote.lookups)
}

func TestEmptyWord(t *testing.T) {
	s := NewService(nil)
	assert.Equal(t, "", s.Translate("   "))
}

func TestUserDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")
	doc := []byte(`{"Kaffe": "espresso", "dugnad": "volunteer work"}`)
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	s := NewService(nil)
	require.NoError(t, s.LoadUserDictionary(path))

	assert.Equal(t, "volunteer work", s.Translate("dugnad"))
	assert.Equal(t, "espresso", s.Translate("kaffe"), "user entries override the built-in dictionary")
}

func TestUserDictionaryMissingFile(t *testing.T) {
	s := NewService(nil)
	assert.NoError(t, s.LoadUserDictionary(filepath.Join(t.TempDir(), "nope.json")))
	assert.Equal(t, "coffee", s.Translate("kaffe"))
}

func TestParseGtx(t *testing.T) {
	body := []byte(`[[["coffee","kaffe",null,null,10]],null,"no"]`)
	got, err := parseGtx(body)
	assert.NoError(t, err)
	assert.Equal(t, "coffee", got)

	_, err = parseGtx([]byte(`"nope"`))
	assert.Error(t, err)
}
