package models

import "time"

// GuestTrial tracks lifetime trial usage per guest device. It is kept in its
// own table, separate from the User row, mirroring the client keeping the
// device key outside the main blob: clearing one does not clear the other.
type GuestTrial struct {
	DeviceKey string    `gorm:"primaryKey" json:"device_key"` // base58 device identifier
	Used      int       `gorm:"default:0" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
