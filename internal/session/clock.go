package session

import "github.com/arnvid/diktat/internal/catalog"

// Per-tier base budgets for action mode, in seconds.
const (
	BudgetEasySecs   = 5
	BudgetMediumSecs = 10
	BudgetHardSecs   = 15

	// MaxEstimatedUseSecs caps the per-round usage estimate applied when
	// crediting the time bank. The estimate deliberately under-counts real
	// elapsed time, which biases the carryover in the player's favor.
	MaxEstimatedUseSecs = 3
)

// BaseBudgetSecs returns the action-mode base budget for a tier.
func BaseBudgetSecs(tier catalog.Tier) int {
	switch tier {
	case catalog.TierMedium:
		return BudgetMediumSecs
	case catalog.TierHard:
		return BudgetHardSecs
	default:
		return BudgetEasySecs
	}
}

// ActionClock carries unused seconds from one action-mode round into the
// next. A timeout never consults the bank; the run is already over.
type ActionClock struct {
	BankSecs int
}

// RoundBudgetSecs returns the total clock for the next round: the banked
// carryover plus the tier's base budget.
func (c *ActionClock) RoundBudgetSecs(tier catalog.Tier) int {
	return c.BankSecs + BaseBudgetSecs(tier)
}

// Credit recomputes the bank after a correct settlement. totalBudgetSecs
// is the budget the round started with; the usage estimate is capped at
// MaxEstimatedUseSecs rather than measured exactly.
func (c *ActionClock) Credit(totalBudgetSecs int) {
	used := MaxEstimatedUseSecs
	if totalBudgetSecs < used {
		used = totalBudgetSecs
	}
	bank := totalBudgetSecs - used
	if bank < 0 {
		bank = 0
	}
	c.BankSecs = bank
}
