package logic

import (
	"testing"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

func TestSpend(t *testing.T) {
	u := &models.User{Coins: 100, Tier: models.TierBronze}
	if !Spend(u, 30) {
		t.Fatal("Spend(30) with balance 100 should succeed")
	}
	if u.Coins != 70 {
		t.Errorf("balance = %d, want 70", u.Coins)
	}
	if u.MonthlySpent != 30 {
		t.Errorf("monthly spent = %d, want 30", u.MonthlySpent)
	}
	if u.TotalSpent != 30 {
		t.Errorf("total spent = %d, want 30", u.TotalSpent)
	}
	if u.Tier != models.TierBronze {
		t.Errorf("tier = %s, want %s", u.Tier, models.TierBronze)
	}
}

func TestSpendInsufficient(t *testing.T) {
	u := &models.User{Coins: 20, MonthlySpent: 10, Tier: models.TierBronze}
	if Spend(u, 30) {
		t.Fatal("Spend(30) with balance 20 should fail")
	}
	if u.Coins != 20 || u.MonthlySpent != 10 {
		t.Errorf("failed spend mutated user: coins=%d monthly=%d", u.Coins, u.MonthlySpent)
	}
}

func TestSpendNeverGoesNegative(t *testing.T) {
	u := &models.User{Coins: 5}
	for _, amount := range []int64{6, 100, 1 << 40} {
		Spend(u, amount)
		if u.Coins < 0 {
			t.Fatalf("balance went negative after Spend(%d): %d", amount, u.Coins)
		}
	}
}

func TestSpendGuestExempt(t *testing.T) {
	u := &models.User{Guest: true, Coins: 0, Tier: models.TierDiamond}
	if !Spend(u, 1000) {
		t.Fatal("guest spend should always succeed")
	}
	if u.Coins != 0 || u.MonthlySpent != 0 {
		t.Errorf("guest spend mutated user: coins=%d monthly=%d", u.Coins, u.MonthlySpent)
	}
	if u.Tier != models.TierDiamond {
		t.Errorf("guest tier = %s, want %s", u.Tier, models.TierDiamond)
	}
}

func TestSpendTierUpBonus(t *testing.T) {
	u := &models.User{Coins: 1000, Tier: models.TierBronze}
	if !Spend(u, 400) {
		t.Fatal("Spend(400) with balance 1000 should succeed")
	}
	if u.Tier != models.TierSilver {
		t.Errorf("tier = %s, want %s", u.Tier, models.TierSilver)
	}
	// 1000 - 400 + 50 silver bonus
	if u.Coins != 650 {
		t.Errorf("balance = %d, want 650", u.Coins)
	}
}

func TestEarn(t *testing.T) {
	u := &models.User{Coins: 10}
	Earn(u, 25)
	if u.Coins != 35 {
		t.Errorf("balance = %d, want 35", u.Coins)
	}
}
