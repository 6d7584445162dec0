package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arnvid/diktat/internal/store"
)

// ChapterMeta describes one content chapter on disk.
type ChapterMeta struct {
	Name          string `json:"name"`
	Folder        string `json:"folder"`
	Description   string `json:"description"`
	RequiredScore int    `json:"required_score"`
	WordsCount    int    `json:"words_count"`
}

// wordEntry is one entry in a chapter's words document.
type wordEntry struct {
	AudioFile   string `json:"audioFile"`
	Difficulty  string `json:"difficulty,omitempty"`
	Translation string `json:"translation,omitempty"`
	Chapter     string `json:"chapter,omitempty"`
}

// wordsDoc is the per-chapter words document shape.
type wordsDoc struct {
	Words map[string]wordEntry `json:"words"`
}

// ListChapters scans the chapters base directory and returns metadata for
// every chapter found, sorted by required score ascending. A chapter dir
// without a metadata document is skipped.
func ListChapters(baseDir string) ([]ChapterMeta, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read chapters dir: %w", err)
	}

	var chapters []ChapterMeta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var meta ChapterMeta
		metaPath := filepath.Join(baseDir, e.Name(), "chapter_metadata.json")
		found, _ := store.LoadDoc(metaPath, &meta)
		if !found {
			continue
		}
		if meta.Folder == "" {
			meta.Folder = e.Name()
		}
		chapters = append(chapters, meta)
	}

	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].RequiredScore != chapters[j].RequiredScore {
			return chapters[i].RequiredScore < chapters[j].RequiredScore
		}
		return chapters[i].Folder < chapters[j].Folder
	})
	return chapters, nil
}

// SeedChapters writes a default metadata document into every chapter
// directory that has audio content but no metadata yet, so a freshly
// unpacked content tree works without hand-editing. The first seeded
// chapter is free; later ones require a rising score in folder order.
func SeedChapters(baseDir string) error {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("read chapters dir: %w", err)
	}

	seeded := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(baseDir, e.Name(), "audio")); err != nil {
			continue
		}
		metaPath := filepath.Join(baseDir, e.Name(), "chapter_metadata.json")
		if _, err := os.Stat(metaPath); err == nil {
			continue
		}
		required := 0
		if seeded > 0 {
			required = 70 + 5*(seeded-1)
			if required > 90 {
				required = 90
			}
		}
		meta := ChapterMeta{
			Name:          strings.ReplaceAll(e.Name(), "_", " "),
			Folder:        e.Name(),
			RequiredScore: required,
		}
		if err := store.SaveDoc(metaPath, &meta); err != nil {
			return fmt.Errorf("seed chapter %q: %w", e.Name(), err)
		}
		seeded++
	}
	return nil
}

// LoadChapter reads a chapter's words document into a catalog. An explicit
// difficulty tag on an entry overrides the length heuristic. Audio file
// names are stored relative to the chapters base directory so one audio
// library can resolve every chapter. A chapter without a words document
// falls back to its audio dir listing, the token being the file name.
func LoadChapter(baseDir, folder string) (*Catalog, error) {
	var doc wordsDoc
	path := filepath.Join(baseDir, folder, "data", "words_metadata.json")
	found, _ := store.LoadDoc(path, &doc)
	if !found || len(doc.Words) == 0 {
		return loadChapterFromAudio(baseDir, folder)
	}

	items := make([]Item, 0, len(doc.Words))
	for token, entry := range doc.Words {
		audio := entry.AudioFile
		if audio == "" {
			audio = token + ".mp3"
		}
		tier := Tier(entry.Difficulty)
		if tier != TierEasy && tier != TierMedium && tier != TierHard {
			tier = "" // fall back to the heuristic
		}
		items = append(items, Item{
			ID:          token,
			AudioFile:   filepath.Join(folder, "audio", audio),
			Tier:        tier,
			Translation: entry.Translation,
			Chapter:     folder,
		})
	}
	return New(items), nil
}

func loadChapterFromAudio(baseDir, folder string) (*Catalog, error) {
	audioDir := filepath.Join(baseDir, folder, "audio")
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, fmt.Errorf("chapter %q: no words document and no audio dir", folder)
	}

	var items []Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".mp3") {
			continue
		}
		items = append(items, Item{
			ID:        strings.TrimSuffix(name, ".mp3"),
			AudioFile: filepath.Join(folder, "audio", name),
			Chapter:   folder,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("chapter %q: no drillable words", folder)
	}
	return New(items), nil
}
