// Package store handles on-disk persistence: flat JSON record documents
// for the authoritative per-user state, and a SQLite event log for history.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// LoadDoc reads a JSON document into v. A missing or unparseable file is
// not an error: v is left at its defaults so callers merge-load against
// their in-code default shape. The bool reports whether a document was
// actually read.
func LoadDoc(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		log.Printf("store: read %s: %v (using defaults)", filepath.Base(path), err)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("store: parse %s: %v (using defaults)", filepath.Base(path), err)
		return false, nil
	}
	return true, nil
}

// SaveDoc writes v as indented JSON via a temp file and rename, so a crash
// mid-write never leaves a truncated document behind.
func SaveDoc(path string, v any) error {
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
