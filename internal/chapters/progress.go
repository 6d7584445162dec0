// Package chapters tracks unlock and completion status of content
// chapters based on session accuracy.
package chapters

import (
	"fmt"
	"sort"
	"time"

	"github.com/arnvid/diktat/internal/catalog"
	"github.com/arnvid/diktat/internal/store"
)

// CompletionThreshold is the accuracy (percent) that marks a chapter
// completed.
const CompletionThreshold = 70

// Chapter combines on-disk metadata with learner progress.
type Chapter struct {
	ID            string
	Name          string
	RequiredScore int // percent needed in a prior session to unlock
	Unlocked      bool
	Completed     bool
	BestScore     float64
	Attempts      int
	LastAttempt   *time.Time
}

// progressDoc is the persisted shape of the chapter progress store.
type progressDoc struct {
	Chapters       map[string]chapterEntry `json:"chapters"`
	CurrentChapter string                  `json:"currentChapter"`
	TotalChapters  int                     `json:"totalChapters"`
}

type chapterEntry struct {
	Unlocked    bool    `json:"unlocked"`
	Completed   bool    `json:"completed"`
	BestScore   float64 `json:"bestScorePercent"`
	Attempts    int     `json:"attempts"`
	LastAttempt *string `json:"lastAttempt"`
}

// Manager owns chapter progress. The in-memory mapping is always
// re-derived from the persisted store at construction; unknown chapters
// default to locked with zero progress, except the entry chapter
// (required score 0) which is unlocked at creation.
type Manager struct {
	path    string
	metas   []catalog.ChapterMeta
	entries map[string]chapterEntry
	current string
}

// NewManager loads progress for the given chapter set. A missing or
// corrupt store starts from the default shape.
func NewManager(path string, metas []catalog.ChapterMeta) *Manager {
	m := &Manager{
		path:    path,
		metas:   append([]catalog.ChapterMeta(nil), metas...),
		entries: make(map[string]chapterEntry),
	}
	sort.Slice(m.metas, func(i, j int) bool {
		if m.metas[i].RequiredScore != m.metas[j].RequiredScore {
			return m.metas[i].RequiredScore < m.metas[j].RequiredScore
		}
		return m.metas[i].Folder < m.metas[j].Folder
	})

	var doc progressDoc
	store.LoadDoc(path, &doc)

	for _, meta := range m.metas {
		entry := chapterEntry{Unlocked: meta.RequiredScore == 0}
		if saved, ok := doc.Chapters[meta.Folder]; ok {
			// Never re-lock: unlock is monotonic.
			saved.Unlocked = saved.Unlocked || entry.Unlocked
			entry = saved
		}
		m.entries[meta.Folder] = entry
	}

	m.current = doc.CurrentChapter
	if _, ok := m.entries[m.current]; !ok && len(m.metas) > 0 {
		m.current = m.metas[0].Folder
	}
	return m
}

// Chapters returns every chapter with its progress, ordered by required
// score ascending.
func (m *Manager) Chapters() []Chapter {
	out := make([]Chapter, 0, len(m.metas))
	for _, meta := range m.metas {
		entry := m.entries[meta.Folder]
		ch := Chapter{
			ID:            meta.Folder,
			Name:          meta.Name,
			RequiredScore: meta.RequiredScore,
			Unlocked:      entry.Unlocked,
			Completed:     entry.Completed,
			BestScore:     entry.BestScore,
			Attempts:      entry.Attempts,
		}
		if entry.LastAttempt != nil {
			if t, err := time.Parse(time.RFC3339, *entry.LastAttempt); err == nil {
				ch.LastAttempt = &t
			}
		}
		out = append(out, ch)
	}
	return out
}

// Current returns the active chapter ID.
func (m *Manager) Current() string {
	return m.current
}

// SetCurrent selects the active chapter; locked chapters are refused.
func (m *Manager) SetCurrent(id string) error {
	entry, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("unknown chapter %q", id)
	}
	if !entry.Unlocked {
		return fmt.Errorf("chapter %q is locked", id)
	}
	m.current = id
	return m.save()
}

// RecordSessionResult folds a session score into the chapter's progress
// and persists: best score is a running max, attempts increment, and the
// chapter completes at the threshold.
func (m *Manager) RecordSessionResult(chapterID string, scorePercent float64, now time.Time) error {
	entry, ok := m.entries[chapterID]
	if !ok {
		return fmt.Errorf("unknown chapter %q", chapterID)
	}
	if scorePercent > entry.BestScore {
		entry.BestScore = scorePercent
	}
	entry.Attempts++
	if scorePercent >= CompletionThreshold {
		entry.Completed = true
	}
	at := now.Format(time.RFC3339)
	entry.LastAttempt = &at
	m.entries[chapterID] = entry
	return m.save()
}

// MaybeUnlockNext unlocks every still-locked chapter whose requirement the
// score clears. A high enough score can unlock several chapters in one
// call. Returns the IDs that transitioned, in threshold order.
func (m *Manager) MaybeUnlockNext(scorePercent float64) ([]string, error) {
	var unlocked []string
	for _, meta := range m.metas {
		entry := m.entries[meta.Folder]
		if entry.Unlocked || float64(meta.RequiredScore) > scorePercent {
			continue
		}
		entry.Unlocked = true
		m.entries[meta.Folder] = entry
		unlocked = append(unlocked, meta.Folder)
	}
	if len(unlocked) == 0 {
		return nil, nil
	}
	return unlocked, m.save()
}

func (m *Manager) save() error {
	doc := progressDoc{
		Chapters:       make(map[string]chapterEntry, len(m.entries)),
		CurrentChapter: m.current,
		TotalChapters:  len(m.metas),
	}
	for id, entry := range m.entries {
		doc.Chapters[id] = entry
	}
	if err := store.SaveDoc(m.path, doc); err != nil {
		return fmt.Errorf("save chapter progress: %w", err)
	}
	return nil
}
