package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TarotCard is one drawn card in a reading. Image fields are populated
// asynchronously after the draw; RequestID correlates an in-flight image
// generation with the card it was requested for, so a stale response for a
// re-drawn card is never applied.
type TarotCard struct {
	Index     int    `json:"index"` // position in the 78-card deck
	Name      string `json:"name"`
	Reversed  bool   `json:"reversed"`
	ImageURL  string `json:"image_url,omitempty"` // placeholder art
	Generated string `json:"generated,omitempty"` // generated art, base64
	RequestID string `json:"request_id,omitempty"`
}

// Cards is a JSON column of drawn cards.
type Cards []TarotCard

func (c Cards) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Cards) Scan(value interface{}) error {
	if value == nil {
		*c = Cards{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("cards: unsupported column type")
}

// Reading is an immutable record of one completed reading. Rows are appended
// to history and never mutated, except for the async image fields on Cards.
type Reading struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserKey        string    `gorm:"index;not null" json:"user_key"`
	Category       string    `gorm:"type:varchar(32)" json:"category"`
	Question       string    `gorm:"type:text" json:"question"`
	Cards          Cards     `gorm:"type:json" json:"cards"`
	Interpretation string    `gorm:"type:text" json:"interpretation"`
	Fallback       bool      `gorm:"default:false" json:"fallback"` // interpretation is the canned apology
	CreatedAt      time.Time `json:"created_at"`
}
