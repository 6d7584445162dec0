package session

import "github.com/arnvid/diktat/internal/catalog"

// Plan is the ordered word list for a session, fixed at session start.
type Plan struct {
	Mode  Mode
	Items []catalog.Item

	// Block sizes of the action-mode order. The current tier is derived
	// from a round's position against these counts, never from the item's
	// own tag, so the easy-to-hard progression survives catalog
	// inconsistencies.
	easyCount   int
	mediumCount int
}

// Len returns the number of rounds in the plan.
func (p *Plan) Len() int {
	return len(p.Items)
}

// TierAt returns the difficulty tier governing the round at position i.
// In practice mode this is the item's own tier; in action mode it is
// derived from the position within the easy/medium/hard blocks.
func (p *Plan) TierAt(i int) catalog.Tier {
	if p.Mode != ModeAction {
		if i >= 0 && i < len(p.Items) {
			return p.Items[i].Tier
		}
		return catalog.TierEasy
	}
	switch {
	case i < p.easyCount:
		return catalog.TierEasy
	case i < p.easyCount+p.mediumCount:
		return catalog.TierMedium
	default:
		return catalog.TierHard
	}
}
