package logic

import (
	"log"

	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// Category is the static metadata gating entry into a reading flow.
type Category struct {
	Key          string
	Screen       models.Screen // input screen this category routes to
	Cost         int64
	MinTier      models.Tier
	AuthRequired bool
	CardCount    int
	Persona      string
}

// Categories is the fixed category table.
var Categories = map[string]Category{
	"love": {
		Key: "love", Screen: models.ScreenQuestionSelect, Cost: 30,
		MinTier: models.TierBronze, CardCount: 3,
		Persona: "You are a warm, encouraging tarot reader focused on love and relationships.",
	},
	"career": {
		Key: "career", Screen: models.ScreenQuestionSelect, Cost: 30,
		MinTier: models.TierBronze, CardCount: 3,
		Persona: "You are a pragmatic tarot reader focused on work and ambition.",
	},
	"money": {
		Key: "money", Screen: models.ScreenQuestionSelect, Cost: 30,
		MinTier: models.TierBronze, CardCount: 3,
		Persona: "You are a grounded tarot reader focused on fortune and finances.",
	},
	"face": {
		Key: "face", Screen: models.ScreenFaceUpload, Cost: 50,
		MinTier: models.TierBronze, AuthRequired: true, CardCount: 1,
		Persona: "You are a playful physiognomy reader blending face reading with tarot.",
	},
	"life": {
		Key: "life", Screen: models.ScreenLifeInput, Cost: 70,
		MinTier: models.TierSilver, CardCount: 5,
		Persona: "You are a thoughtful tarot reader mapping a whole life's arc.",
	},
	"partner": {
		Key: "partner", Screen: models.ScreenPartnerInput, Cost: 70,
		MinTier: models.TierGold, AuthRequired: true, CardCount: 4,
		Persona: "You are a tactful tarot reader weighing two people's compatibility.",
	},
}

// transitions is the screen adjacency table. RESULT always offers the way
// back to CATEGORY_SELECT; CHAT_ROOM is a side door off CATEGORY_SELECT.
var transitions = map[models.Screen][]models.Screen{
	models.ScreenWelcome:        {models.ScreenInputInfo},
	models.ScreenInputInfo:      {models.ScreenCategorySelect},
	models.ScreenCategorySelect: {models.ScreenQuestionSelect, models.ScreenFaceUpload, models.ScreenLifeInput, models.ScreenPartnerInput, models.ScreenChatRoom},
	models.ScreenQuestionSelect: {models.ScreenShuffling, models.ScreenCategorySelect},
	models.ScreenFaceUpload:     {models.ScreenShuffling, models.ScreenCategorySelect},
	models.ScreenLifeInput:      {models.ScreenShuffling, models.ScreenCategorySelect},
	models.ScreenPartnerInput:   {models.ScreenShuffling, models.ScreenCategorySelect},
	models.ScreenShuffling:      {models.ScreenCardSelect},
	models.ScreenCardSelect:     {models.ScreenResult},
	models.ScreenResult:         {models.ScreenCategorySelect},
	models.ScreenChatRoom:       {models.ScreenCategorySelect},
}

// CanTransition reports whether the edge from → to exists.
func CanTransition(from, to models.Screen) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FlowLogic drives screen transitions with their guards.
type FlowLogic struct {
	userStore  UserStore
	sessions   SessionStore
	guestTrial GuestTrialStore
}

func NewFlowLogic(userStore UserStore, sessions SessionStore, guestTrial GuestTrialStore) *FlowLogic {
	return &FlowLogic{userStore: userStore, sessions: sessions, guestTrial: guestTrial}
}

// guardEntry checks the navigation guards for entering a category's input
// screen: auth gate first, then tier minimum.
func guardEntry(u *models.User, cat Category) error {
	if cat.AuthRequired && u.Guest {
		return ErrAuthRequired
	}
	if !EffectiveTier(u).AtLeast(cat.MinTier) {
		return ErrTierTooLow
	}
	return nil
}

// guardReading checks the limits on a reading-producing step: the daily
// quota and, for guests, the lifetime trial. Whichever is tighter blocks.
func (f *FlowLogic) guardReading(u *models.User) error {
	if u.Guest {
		trial, err := f.guestTrial.GetTrial(u.UserKey)
		if err != nil {
			return err
		}
		if trial.Used >= 1 {
			return ErrGuestTrialUsed
		}
	}
	if quota := DailyQuotaFor(EffectiveTier(u)); quota > 0 && u.DailyReadings >= quota {
		return ErrDailyQuotaExceeded
	}
	return nil
}

// Advance moves the user's session to the requested screen. Category entry
// screens require the category and run its guards; entering SHUFFLING runs
// the reading limits so the client is blocked before the draw, not after.
// A rejected guard leaves the stored snapshot untouched.
func (f *FlowLogic) Advance(userKey string, to models.Screen, categoryKey string) (*models.SessionSnapshot, error) {
	user, err := f.userStore.GetUserByKey(userKey)
	if err != nil {
		return nil, err
	}

	snap, err := f.sessions.GetSnapshot(userKey)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		snap = &models.SessionSnapshot{UserKey: userKey, Screen: models.ScreenWelcome}
	}

	if !CanTransition(snap.Screen, to) {
		return nil, ErrInvalidTransition
	}

	switch to {
	case models.ScreenQuestionSelect, models.ScreenFaceUpload, models.ScreenLifeInput, models.ScreenPartnerInput:
		cat, ok := Categories[categoryKey]
		if !ok || cat.Screen != to {
			return nil, ErrUnknownCategory
		}
		if err := guardEntry(user, cat); err != nil {
			return nil, err
		}
		snap.Category = categoryKey
	case models.ScreenShuffling:
		if err := f.guardReading(user); err != nil {
			return nil, err
		}
	}

	snap.Screen = to
	if err := f.sessions.SaveSnapshot(snap); err != nil {
		// Navigation still succeeds; the resume point is just stale.
		log.Printf("Failed to save session snapshot for %s: %v", userKey, err)
	}
	return snap, nil
}
