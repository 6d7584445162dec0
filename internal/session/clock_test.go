package session

import (
	"testing"

	"github.com/arnvid/diktat/internal/catalog"
)

func TestBaseBudgetSecs(t *testing.T) {
	tests := []struct {
		tier catalog.Tier
		want int
	}{
		{catalog.TierEasy, 5},
		{catalog.TierMedium, 10},
		{catalog.TierHard, 15},
	}
	for _, tt := range tests {
		if got := BaseBudgetSecs(tt.tier); got != tt.want {
			t.Errorf("BaseBudgetSecs(%s) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestActionClockCarryover(t *testing.T) {
	var c ActionClock

	// First easy round: 5s budget, 3s assumed used, 2s banked.
	if got := c.RoundBudgetSecs(catalog.TierEasy); got != 5 {
		t.Fatalf("RoundBudgetSecs = %d, want 5", got)
	}
	c.Credit(5)
	if c.BankSecs != 2 {
		t.Errorf("BankSecs = %d, want 2", c.BankSecs)
	}

	// Next easy round inherits the bank.
	if got := c.RoundBudgetSecs(catalog.TierEasy); got != 7 {
		t.Errorf("RoundBudgetSecs = %d, want 7", got)
	}
	c.Credit(7)
	if c.BankSecs != 4 {
		t.Errorf("BankSecs = %d, want 4", c.BankSecs)
	}
}

func TestActionClockCreditNeverNegative(t *testing.T) {
	var c ActionClock
	c.Credit(2)
	if c.BankSecs != 0 {
		t.Errorf("BankSecs = %d, want 0", c.BankSecs)
	}
}
