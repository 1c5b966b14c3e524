package logic

import "github.com/danbal6016-collab/jblack-tarot-sub000/models"

// Bonus granted once per rank climbed when spending pushes the user into a
// higher tier.
var tierUpBonuses = map[models.Tier]int64{
	models.TierSilver:  50,
	models.TierGold:    200,
	models.TierDiamond: 500,
}

// Spend deducts amount from the user's balance and bumps the spend counters.
// Guests are exempt: the spend "succeeds" without touching the balance.
// Returns false, leaving the user unchanged, when the balance is short.
// The balance can never go negative through this path.
func Spend(u *models.User, amount int64) bool {
	if u.Guest {
		return true
	}
	if u.Coins < amount {
		return false
	}
	u.Coins -= amount
	u.TotalSpent += amount
	u.MonthlySpent += amount

	prev := u.Tier
	u.Tier = TierForSpend(u.MonthlySpent)
	if u.Tier.Rank() > prev.Rank() {
		for r := prev.Rank() + 1; r <= u.Tier.Rank(); r++ {
			u.Coins += tierUpBonuses[models.TierAtRank(r)]
		}
	}
	return true
}

// Earn adds to the balance unconditionally.
func Earn(u *models.User, amount int64) {
	u.Coins += amount
}
