package models

import "time"

// PaymentEvent records one credited payment, keyed by the provider-assigned
// payment identifier. The primary key is the idempotency guard: a replayed
// webhook or confirm call with the same identifier credits at most once.
type PaymentEvent struct {
	ID        string    `gorm:"primaryKey" json:"id"` // provider payment identifier
	Provider  string    `gorm:"not null" json:"provider"`
	UserKey   string    `gorm:"not null" json:"user_key"`
	Amount    int64     `gorm:"not null" json:"amount"` // charged amount, provider currency units
	Coins     int64     `gorm:"not null" json:"coins"`  // coins credited
	CreatedAt time.Time `json:"created_at"`
}
