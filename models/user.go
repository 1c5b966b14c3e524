package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the per-user aggregate: identity, coin balance, spend counters,
// tier and the date-keyed rollover state. Dates are stored as calendar
// strings ("2006-01-02" / "2006-01") because rollover compares calendar
// days and months, not instants.
type User struct {
	ID               uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserKey          string         `gorm:"uniqueIndex;not null" json:"user_key"` // upstream auth subject, or guest device key
	Email            string         `json:"email"`
	Guest            bool           `gorm:"default:false" json:"guest"`
	Coins            int64          `gorm:"default:0" json:"coins"`
	TotalSpent       int64          `gorm:"default:0" json:"total_spent"`
	MonthlySpent     int64          `gorm:"default:0" json:"monthly_spent"`
	Tier             Tier           `gorm:"type:varchar(16);default:BRONZE" json:"tier"`
	AttendanceStreak int            `gorm:"default:0" json:"attendance_streak"`
	LastLoginDate    string         `gorm:"type:varchar(10)" json:"last_login_date"`
	LastRewardMonth  string         `gorm:"type:varchar(7)" json:"last_reward_month"`
	DailyReadings    int            `gorm:"default:0" json:"daily_readings"`
	LastReadingDate  string         `gorm:"type:varchar(10)" json:"last_reading_date"`
	Customizations   datatypes.JSON `json:"customizations"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
