package logic

import "github.com/danbal6016-collab/jblack-tarot-sub000/models"

// Monthly-spend thresholds for each tier. TierForSpend is monotonic over its
// whole domain; the boundaries are inclusive.
const (
	silverThreshold  = 400
	goldThreshold    = 1500
	diamondThreshold = 4000
)

// TierForSpend maps cumulative monthly spend to a tier.
func TierForSpend(monthlySpent int64) models.Tier {
	switch {
	case monthlySpent >= diamondThreshold:
		return models.TierDiamond
	case monthlySpent >= goldThreshold:
		return models.TierGold
	case monthlySpent >= silverThreshold:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// EffectiveTier is the tier used for gating. Guests are pinned to the top
// tier by product decision.
func EffectiveTier(u *models.User) models.Tier {
	if u.Guest {
		return models.TierDiamond
	}
	return u.Tier
}
