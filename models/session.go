package models

import (
	"time"

	"gorm.io/datatypes"
)

// Screen is one state of the reading flow.
type Screen string

const (
	ScreenWelcome        Screen = "WELCOME"
	ScreenInputInfo      Screen = "INPUT_INFO"
	ScreenCategorySelect Screen = "CATEGORY_SELECT"
	ScreenQuestionSelect Screen = "QUESTION_SELECT"
	ScreenFaceUpload     Screen = "FACE_UPLOAD"
	ScreenLifeInput      Screen = "LIFE_INPUT"
	ScreenPartnerInput   Screen = "PARTNER_INPUT"
	ScreenShuffling      Screen = "SHUFFLING"
	ScreenCardSelect     Screen = "CARD_SELECT"
	ScreenResult         Screen = "RESULT"
	ScreenChatRoom       Screen = "CHAT_ROOM"
)

// SessionSnapshot is the transient navigation state of a user, persisted
// opportunistically so a reload can resume mid-flow. It is overwritten
// wholesale on every save.
type SessionSnapshot struct {
	UserKey       string         `gorm:"primaryKey" json:"user_key"`
	Screen        Screen         `gorm:"type:varchar(24)" json:"screen"`
	Category      string         `gorm:"type:varchar(32)" json:"category"`
	Question      string         `gorm:"type:text" json:"question"`
	SelectedCards datatypes.JSON `json:"selected_cards"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
