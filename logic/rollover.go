package logic

import (
	"time"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	// One demotion step per full block of inactive days.
	inactivityBlockDays = 15

	// Attendance streak wraps back to 1 after this many days.
	streakLength = 7

	// Daily reading cap for the two lower tiers; GOLD and DIAMOND are
	// unlimited.
	dailyReadingCap = 3
)

// Coins granted per attendance day, indexed by streak day 1..7.
var streakRewards = [streakLength]int64{5, 10, 15, 20, 25, 30, 50}

// Balance multipliers applied at monthly rollover for the tier held when the
// month turned.
var monthlyMultipliers = map[models.Tier]float64{
	models.TierGold:    1.5,
	models.TierDiamond: 2.0,
}

// ApplyRollover recomputes the date-keyed state of the aggregate at session
// start: inactivity decay, monthly bonus and reset, attendance streak, daily
// counter. Mutates u in place; persistence is the caller's job.
func ApplyRollover(u *models.User, now time.Time) {
	today := now.Format(dateLayout)
	thisMonth := now.Format(monthLayout)

	// Inactivity decay: one step down per full 15-day block since the
	// last login. Guests keep their pinned tier.
	if !u.Guest && u.LastLoginDate != "" {
		if last, err := time.Parse(dateLayout, u.LastLoginDate); err == nil {
			// Calendar days, not instants: both endpoints are rebuilt at
			// UTC midnight so now's zone cannot shift the gap.
			nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
			gapDays := int(nowDay.Sub(lastDay).Hours() / 24)
			if steps := gapDays / inactivityBlockDays; steps > 0 {
				u.Tier = u.Tier.Demoted(steps)
			}
		}
	}

	// Monthly rollover: bonus on the balance for the tier held now, then
	// monthly spend and tier reset to base.
	if u.LastRewardMonth != thisMonth {
		if u.LastRewardMonth != "" {
			if mult, ok := monthlyMultipliers[EffectiveTier(u)]; ok {
				u.Coins = int64(float64(u.Coins) * mult)
			}
		}
		u.MonthlySpent = 0
		if !u.Guest {
			u.Tier = models.TierBronze
		}
		u.LastRewardMonth = thisMonth
	}

	// Attendance: once per distinct calendar day, wrapping after the full
	// streak, with a streak-indexed reward.
	if u.LastLoginDate != today {
		u.AttendanceStreak = u.AttendanceStreak%streakLength + 1
		Earn(u, streakRewards[u.AttendanceStreak-1])
		u.LastLoginDate = today
	}

	// Daily reading counter resets when the recorded reading date is stale.
	if u.LastReadingDate != today {
		u.DailyReadings = 0
	}
}

// DailyQuotaFor returns the number of readings allowed per day for a tier,
// with 0 meaning unlimited.
func DailyQuotaFor(tier models.Tier) int {
	if tier.AtLeast(models.TierGold) {
		return 0
	}
	return dailyReadingCap
}
