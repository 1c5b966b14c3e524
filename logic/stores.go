package logic

import (
	"context"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
	"github.com/danbal6016-collab/jblack-tarot-sub000/pkg"
)

// Store interfaces decouple the business rules from gorm. The dao package
// provides the real implementations; tests use memory fakes.

type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByKey(userKey string) (*models.User, error)
	SaveUser(user *models.User) error
}

type ReadingStore interface {
	CreateReading(reading *models.Reading) error
	GetReadingByID(id uint64) (*models.Reading, error)
	GetReadingsByUserKey(userKey string, limit int) ([]models.Reading, error)
	ApplyCardImage(readingID uint64, requestID, image string) (bool, error)
}

type PaymentEventStore interface {
	GetPaymentEvent(id string) (*models.PaymentEvent, error)
	SavePaymentEvent(event *models.PaymentEvent) error
}

type SessionStore interface {
	GetSnapshot(userKey string) (*models.SessionSnapshot, error)
	SaveSnapshot(snap *models.SessionSnapshot) error
}

type GuestTrialStore interface {
	GetTrial(deviceKey string) (*models.GuestTrial, error)
	IncrementTrial(deviceKey string) error
}

// TextGenerator produces an interpretation from a prompt. *pkg.GeminiClient
// satisfies it.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, persona, prompt string) (string, error)
}

// ImageGenerator produces base64 card art. *pkg.GeminiClient satisfies it.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model, prompt string) (string, error)
}

// CheckoutProvider creates hosted checkout sessions. *pkg.StripeClient
// satisfies it.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params pkg.CheckoutParams) (*pkg.CheckoutSession, error)
}

// ConfirmProvider confirms client-obtained payment handles. *pkg.TossClient
// satisfies it.
type ConfirmProvider interface {
	ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*pkg.TossPayment, error)
}
