package logic

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// Canned interpretation used when the generative backend is down for good.
// The flow must never dead-end on an upstream failure.
const fallbackInterpretation = "The cards are quiet tonight. The spirits ask " +
	"for a moment of patience. Please draw again soon, and the answer you " +
	"seek will find its way to you."

const imageTimeout = 60 * time.Second

// ReadingLogic runs the reading pipeline: guards, spend, draw, interpret,
// record, and the asynchronous card art.
type ReadingLogic struct {
	userStore  UserStore
	readings   ReadingStore
	sessions   SessionStore
	guestTrial GuestTrialStore
	flow       *FlowLogic
	textGen    TextGenerator
	imageGen   ImageGenerator
	textModel  string
	imageModel string
	timeout    time.Duration
	maxRetries int
}

func NewReadingLogic(
	userStore UserStore,
	readings ReadingStore,
	sessions SessionStore,
	guestTrial GuestTrialStore,
	textGen TextGenerator,
	imageGen ImageGenerator,
	textModel, imageModel string,
	timeout time.Duration,
	maxRetries int,
) *ReadingLogic {
	return &ReadingLogic{
		userStore:  userStore,
		readings:   readings,
		sessions:   sessions,
		guestTrial: guestTrial,
		flow:       NewFlowLogic(userStore, sessions, guestTrial),
		textGen:    textGen,
		imageGen:   imageGen,
		textModel:  textModel,
		imageModel: imageModel,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

// CommitReading performs one reading for the user: full guard chain, coin
// deduction, card draw, interpretation, history append. The guard order is
// auth gate, tier minimum, quota/trial, then payment; the first rejection
// aborts with no state change.
func (l *ReadingLogic) CommitReading(ctx context.Context, userKey, categoryKey, question string, cardIndexes []int, birthData string) (*models.Reading, error) {
	user, err := l.userStore.GetUserByKey(userKey)
	if err != nil {
		return nil, err
	}
	cat, ok := Categories[categoryKey]
	if !ok {
		return nil, ErrUnknownCategory
	}

	if err := guardEntry(user, cat); err != nil {
		return nil, err
	}
	if err := l.flow.guardReading(user); err != nil {
		return nil, err
	}
	if !Spend(user, cat.Cost) {
		return nil, ErrInsufficientCoins
	}

	cards, err := drawCards(cardIndexes, cat.CardCount)
	if err != nil {
		return nil, err
	}

	interpretation, fallback := l.interpret(ctx, cat, question, cards, birthData)

	reading := &models.Reading{
		UserKey:        userKey,
		Category:       categoryKey,
		Question:       question,
		Cards:          cards,
		Interpretation: interpretation,
		Fallback:       fallback,
	}
	if err := l.readings.CreateReading(reading); err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)
	user.DailyReadings++
	user.LastReadingDate = today
	if err := l.userStore.SaveUser(user); err != nil {
		return nil, err
	}
	if user.Guest {
		if err := l.guestTrial.IncrementTrial(user.UserKey); err != nil {
			log.Printf("Failed to record guest trial for %s: %v", userKey, err)
		}
	}

	// Move the session to RESULT; best-effort, the reading is already
	// committed.
	if err := l.sessions.SaveSnapshot(&models.SessionSnapshot{
		UserKey: userKey,
		Screen:  models.ScreenResult,
	}); err != nil {
		log.Printf("Failed to save session snapshot for %s: %v", userKey, err)
	}

	go l.generateCardArt(reading)

	return reading, nil
}

// GetReading retrieves one reading, used by clients polling for card art.
func (l *ReadingLogic) GetReading(id uint64) (*models.Reading, error) {
	return l.readings.GetReadingByID(id)
}

// GetHistory retrieves the user's readings, most recent first.
func (l *ReadingLogic) GetHistory(userKey string, limit int) ([]models.Reading, error) {
	return l.readings.GetReadingsByUserKey(userKey, limit)
}

// drawCards resolves the selected deck indexes into cards. The reversed flag
// is randomized independently per card, and each card gets a correlation id
// for the image work that follows.
func drawCards(indexes []int, want int) (models.Cards, error) {
	if len(indexes) != want {
		return nil, fmt.Errorf("expected %d cards, got %d", want, len(indexes))
	}
	seen := make(map[int]bool, len(indexes))
	cards := make(models.Cards, 0, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(models.Deck) {
			return nil, fmt.Errorf("card index %d out of range", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("card index %d selected twice", idx)
		}
		seen[idx] = true
		cards = append(cards, models.TarotCard{
			Index:     idx,
			Name:      models.Deck[idx],
			Reversed:  rand.Intn(2) == 1,
			ImageURL:  fmt.Sprintf("/cards/%02d.png", idx),
			RequestID: uuid.New().String(),
		})
	}
	return cards, nil
}

// interpret calls the text model with bounded retries and doubling backoff.
// Total failure degrades to the canned fallback instead of an error.
func (l *ReadingLogic) interpret(ctx context.Context, cat Category, question string, cards models.Cards, birthData string) (string, bool) {
	prompt := buildPrompt(cat, question, cards, birthData)

	backoff := 500 * time.Millisecond
	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, l.timeout)
		text, err := l.textGen.GenerateText(attemptCtx, l.textModel, cat.Persona, prompt)
		cancel()
		if err == nil {
			return text, false
		}
		log.Printf("Interpretation attempt %d/%d failed: %v", attempt, l.maxRetries, err)
		if attempt < l.maxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fallbackInterpretation, true
			}
			backoff *= 2
		}
	}
	return fallbackInterpretation, true
}

func buildPrompt(cat Category, question string, cards models.Cards, birthData string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reading category: %s\n", cat.Key)
	if question != "" {
		fmt.Fprintf(&b, "Question: %s\n", question)
	}
	if birthData != "" {
		fmt.Fprintf(&b, "Seeker's birth data: %s\n", birthData)
	}
	b.WriteString("Cards drawn:\n")
	for i, card := range cards {
		orientation := "upright"
		if card.Reversed {
			orientation = "reversed"
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, card.Name, orientation)
	}
	b.WriteString("Give an interpretation of this spread for the seeker.")
	return b.String()
}

// generateCardArt fires one image generation per card. Results may complete
// in any order; each is applied only to the card whose correlation id still
// matches, so a stale response cannot clobber a newer draw.
func (l *ReadingLogic) generateCardArt(reading *models.Reading) {
	for _, card := range reading.Cards {
		go func(card models.TarotCard) {
			ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
			defer cancel()

			orientation := "upright"
			if card.Reversed {
				orientation = "reversed"
			}
			prompt := fmt.Sprintf("Mystical tarot card art for %q, %s orientation, rich ink and gold leaf style.", card.Name, orientation)

			image, err := l.imageGen.GenerateImage(ctx, l.imageModel, prompt)
			if err != nil {
				log.Printf("Card art for %q failed: %v", card.Name, err)
				return
			}
			applied, err := l.readings.ApplyCardImage(reading.ID, card.RequestID, image)
			if err != nil {
				log.Printf("Failed to store card art for %q: %v", card.Name, err)
				return
			}
			if !applied {
				log.Printf("Dropped stale card art for %q (request %s)", card.Name, card.RequestID)
			}
		}(card)
	}
}
