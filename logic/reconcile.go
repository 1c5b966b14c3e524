package logic

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// Starter balance for a freshly created signed-in account.
const starterCoins = 100

// ClientSnapshot is the loosely-typed aggregate a client may carry from its
// local storage. Numerics are float64 on purpose: both storage paths on the
// client are untyped and have produced NaN and negative values in the wild.
type ClientSnapshot struct {
	Coins            float64        `json:"coins"`
	TotalSpent       float64        `json:"total_spent"`
	MonthlySpent     float64        `json:"monthly_spent"`
	Tier             string         `json:"tier"`
	AttendanceStreak float64        `json:"attendance_streak"`
	LastLoginDate    string         `json:"last_login_date"`
	LastRewardMonth  string         `json:"last_reward_month"`
	DailyReadings    float64        `json:"daily_readings"`
	LastReadingDate  string         `json:"last_reading_date"`
	Customizations   datatypes.JSON `json:"customizations"`
}

// sanitizeNumber coerces non-finite and negative values to zero.
func sanitizeNumber(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(f)
}

// sanitizeTier falls back to BRONZE for unknown labels.
func sanitizeTier(s string) models.Tier {
	t := models.Tier(s)
	switch t {
	case models.TierBronze, models.TierSilver, models.TierGold, models.TierDiamond:
		return t
	}
	return models.TierBronze
}

// SessionLogic reconciles local and remote state at session start.
type SessionLogic struct {
	userStore UserStore
	sessions  SessionStore
}

func NewSessionLogic(userStore UserStore, sessions SessionStore) *SessionLogic {
	return &SessionLogic{userStore: userStore, sessions: sessions}
}

// StartSession merges the client's local snapshot with the server record and
// applies rollover. Precedence is remote-wins: an existing server record
// fully supersedes whatever the client carried. Only when no server record
// exists yet is the local snapshot (sanitized) promoted; absent both, a
// fresh default record is created. Returns the authoritative aggregate and
// the screen to resume on.
func (l *SessionLogic) StartSession(userKey, email string, guest bool, local *ClientSnapshot, now time.Time) (*models.User, models.Screen, error) {
	user, err := l.userStore.GetUserByKey(userKey)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, "", err
		}
		user = l.promote(userKey, email, guest, local)
		if err := l.userStore.CreateUser(user); err != nil {
			return nil, "", err
		}
	}

	// Collection fields missing from either path become empty, not null.
	if len(user.Customizations) == 0 {
		user.Customizations = datatypes.JSON("[]")
	}

	ApplyRollover(user, now)
	if err := l.userStore.SaveUser(user); err != nil {
		return nil, "", err
	}

	screen := models.ScreenWelcome
	if snap, err := l.sessions.GetSnapshot(userKey); err == nil && snap.Screen != "" {
		screen = snap.Screen
	}
	return user, screen, nil
}

// promote builds a server record from the client snapshot, or defaults when
// the client carried nothing.
func (l *SessionLogic) promote(userKey, email string, guest bool, local *ClientSnapshot) *models.User {
	user := &models.User{
		UserKey:        userKey,
		Email:          email,
		Guest:          guest,
		Coins:          starterCoins,
		Tier:           models.TierBronze,
		Customizations: datatypes.JSON("[]"),
	}
	if guest {
		user.Tier = models.TierDiamond
	}
	if local == nil {
		return user
	}

	user.Coins = sanitizeNumber(local.Coins)
	user.TotalSpent = sanitizeNumber(local.TotalSpent)
	user.MonthlySpent = sanitizeNumber(local.MonthlySpent)
	user.AttendanceStreak = int(sanitizeNumber(local.AttendanceStreak))
	user.DailyReadings = int(sanitizeNumber(local.DailyReadings))
	user.LastLoginDate = local.LastLoginDate
	user.LastRewardMonth = local.LastRewardMonth
	user.LastReadingDate = local.LastReadingDate
	if guest {
		user.Tier = models.TierDiamond
	} else {
		user.Tier = sanitizeTier(local.Tier)
	}
	if len(local.Customizations) > 0 {
		user.Customizations = local.Customizations
	}
	return user
}
