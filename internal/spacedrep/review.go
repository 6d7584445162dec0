// Package spacedrep schedules word reviews on an expanding interval:
// the interval doubles on a correct answer and resets to one day on an
// incorrect one.
package spacedrep

import "time"

// ReviewRecord holds the schedule for a single word. One record exists per
// word that has ever been drilled; records are never deleted.
type ReviewRecord struct {
	ItemID       string
	NextReviewAt time.Time
	IntervalDays int
}

// IsDue returns true if the word is due for review (at or past the review date).
func (r *ReviewRecord) IsDue(now time.Time) bool {
	return !now.Before(r.NextReviewAt)
}

// Advance applies one drill outcome: double the interval on correct, reset
// to one day on incorrect, and push the next review out by the new interval.
func (r *ReviewRecord) Advance(correct bool, now time.Time) {
	if correct {
		if r.IntervalDays < 1 {
			r.IntervalDays = 1
		}
		r.IntervalDays *= 2
	} else {
		r.IntervalDays = 1
	}
	r.NextReviewAt = now.AddDate(0, 0, r.IntervalDays)
}
