package models

// Tier is a coarse reward level derived from monthly spend.
type Tier string

const (
	TierBronze  Tier = "BRONZE"
	TierSilver  Tier = "SILVER"
	TierGold    Tier = "GOLD"
	TierDiamond Tier = "DIAMOND"
)

// tierOrder lists tiers from lowest to highest.
var tierOrder = []Tier{TierBronze, TierSilver, TierGold, TierDiamond}

// Rank returns the position of the tier in the ordered ladder, lowest first.
// Unknown values rank as BRONZE.
func (t Tier) Rank() int {
	for i, o := range tierOrder {
		if o == t {
			return i
		}
	}
	return 0
}

// TierAtRank returns the tier at a ladder position, clamped to the ladder.
func TierAtRank(rank int) Tier {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(tierOrder) {
		rank = len(tierOrder) - 1
	}
	return tierOrder[rank]
}

// AtLeast reports whether t is the same tier as other or above it.
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

// Demoted returns the tier lowered by steps, floored at BRONZE.
func (t Tier) Demoted(steps int) Tier {
	if steps <= 0 {
		return t
	}
	r := t.Rank() - steps
	if r < 0 {
		r = 0
	}
	return tierOrder[r]
}
