package spacedrep

import (
	"fmt"
	"sort"
	"time"

	"github.com/arnvid/diktat/internal/store"
)

// reviewDoc is the on-disk shape: one entry per word, keyed by word.
type reviewDoc struct {
	NextReviewAt string `json:"nextReviewAt"`
	IntervalDays int    `json:"intervalDays"`
}

// Scheduler manages the review schedule and persists it after every
// outcome. A corrupt or unreadable store loads as empty: scheduling
// degrades to new-item selection instead of blocking the trainer.
type Scheduler struct {
	path    string
	records map[string]*ReviewRecord
}

// NewScheduler loads the review store at path. Load failures are not
// fatal; they yield an empty scheduler.
func NewScheduler(path string) *Scheduler {
	s := &Scheduler{
		path:    path,
		records: make(map[string]*ReviewRecord),
	}

	var doc map[string]reviewDoc
	if found, _ := store.LoadDoc(path, &doc); !found {
		return s
	}
	for id, rd := range doc {
		next, err := time.Parse(time.RFC3339, rd.NextReviewAt)
		if err != nil {
			continue
		}
		interval := rd.IntervalDays
		if interval < 1 {
			interval = 1
		}
		s.records[id] = &ReviewRecord{
			ItemID:       id,
			NextReviewAt: next,
			IntervalDays: interval,
		}
	}
	return s
}

// RecordOutcome updates a word's schedule after a settled round and
// persists immediately. A word drilled for the first time starts at a
// one-day interval regardless of the outcome.
func (s *Scheduler) RecordOutcome(itemID string, correct bool, now time.Time) error {
	rec, ok := s.records[itemID]
	if !ok {
		rec = &ReviewRecord{
			ItemID:       itemID,
			IntervalDays: 1,
			NextReviewAt: now.AddDate(0, 0, 1),
		}
		s.records[itemID] = rec
	} else {
		rec.Advance(correct, now)
	}
	return s.save()
}

// DueItems returns the set of words whose next review is at or before now.
func (s *Scheduler) DueItems(now time.Time) map[string]bool {
	due := make(map[string]bool)
	for id, rec := range s.records {
		if rec.IsDue(now) {
			due[id] = true
		}
	}
	return due
}

// DueCount returns how many words are currently due.
func (s *Scheduler) DueCount(now time.Time) int {
	return len(s.DueItems(now))
}

// Record returns the review record for a word, or nil if never drilled.
func (s *Scheduler) Record(itemID string) *ReviewRecord {
	return s.records[itemID]
}

// AllRecords returns every record sorted by next review date, soonest first.
func (s *Scheduler) AllRecords() []*ReviewRecord {
	out := make([]*ReviewRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextReviewAt.Equal(out[j].NextReviewAt) {
			return out[i].NextReviewAt.Before(out[j].NextReviewAt)
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

func (s *Scheduler) save() error {
	doc := make(map[string]reviewDoc, len(s.records))
	for id, rec := range s.records {
		doc[id] = reviewDoc{
			NextReviewAt: rec.NextReviewAt.Format(time.RFC3339),
			IntervalDays: rec.IntervalDays,
		}
	}
	if err := store.SaveDoc(s.path, doc); err != nil {
		return fmt.Errorf("save review store: %w", err)
	}
	return nil
}
