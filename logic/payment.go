package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/config"
	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
	"github.com/danbal6016-collab/jblack-tarot-sub000/pkg"
)

const (
	ProviderCheckout = "stripe"
	ProviderConfirm  = "toss"
)

// PaymentLogic credits coins for completed payments from either provider.
// Crediting is idempotent by provider payment identifier.
type PaymentLogic struct {
	userStore UserStore
	events    PaymentEventStore
	checkout  CheckoutProvider
	confirm   ConfirmProvider
}

func NewPaymentLogic(
	userStore UserStore,
	events PaymentEventStore,
	checkout CheckoutProvider,
	confirm ConfirmProvider,
) *PaymentLogic {
	return &PaymentLogic{
		userStore: userStore,
		events:    events,
		checkout:  checkout,
		confirm:   confirm,
	}
}

// CreateCheckout creates a hosted checkout session for a coin package. The
// user key and package travel in metadata so the webhook can credit.
func (l *PaymentLogic) CreateCheckout(ctx context.Context, userKey, packageID string) (*pkg.CheckoutSession, error) {
	coinPkg, ok := config.GlobalConfig.Package(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}
	return l.checkout.CreateCheckoutSession(ctx, pkg.CheckoutParams{
		Amount:      coinPkg.Amount,
		Currency:    coinPkg.Currency,
		ProductName: fmt.Sprintf("%d coins", coinPkg.Coins),
		SuccessURL:  config.GlobalConfig.Stripe.SuccessURL,
		CancelURL:   config.GlobalConfig.Stripe.CancelURL,
		Metadata: map[string]string{
			"user_key": userKey,
			"package":  packageID,
			"coins":    strconv.FormatInt(coinPkg.Coins, 10),
			"order_id": uuid.New().String(),
		},
	})
}

// HandleCheckoutEvent processes a verified webhook event. Only completed
// checkout sessions credit; everything else is acknowledged and ignored.
func (l *PaymentLogic) HandleCheckoutEvent(event *pkg.StripeEvent) error {
	if event.Type != "checkout.session.completed" {
		return nil
	}
	var session pkg.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %v", err)
	}
	if session.PaymentStatus != "paid" {
		return nil
	}
	userKey := session.Metadata["user_key"]
	coins, err := strconv.ParseInt(session.Metadata["coins"], 10, 64)
	if err != nil || userKey == "" || coins <= 0 {
		return fmt.Errorf("checkout session %s missing credit metadata", session.ID)
	}
	return l.Credit(session.ID, ProviderCheckout, userKey, session.AmountTotal, coins)
}

// ConfirmAndCredit runs the confirm-then-credit flow: validate the package,
// confirm the handle with the provider, then credit. The provider payment
// key is the idempotency key.
func (l *PaymentLogic) ConfirmAndCredit(ctx context.Context, userKey, paymentKey, orderID, packageID string) (*models.User, error) {
	coinPkg, ok := config.GlobalConfig.Package(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	payment, err := l.confirm.ConfirmPayment(ctx, paymentKey, orderID, coinPkg.Amount)
	if err != nil {
		log.Printf("Payment confirm failed for order %s: %v", orderID, err)
		return nil, ErrPaymentFailed
	}
	if payment.Status != "DONE" || payment.TotalAmount != coinPkg.Amount {
		return nil, ErrPaymentFailed
	}

	if err := l.Credit(payment.PaymentKey, ProviderConfirm, userKey, payment.TotalAmount, coinPkg.Coins); err != nil {
		return nil, err
	}
	return l.userStore.GetUserByKey(userKey)
}

// Credit adds coins for one payment identifier, at most once. A replayed
// identifier is a no-op, not an error.
func (l *PaymentLogic) Credit(paymentID, provider, userKey string, amount, coins int64) error {
	if _, err := l.events.GetPaymentEvent(paymentID); err == nil {
		log.Printf("Payment %s already credited, skipping", paymentID)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := l.events.SavePaymentEvent(&models.PaymentEvent{
		ID:       paymentID,
		Provider: provider,
		UserKey:  userKey,
		Amount:   amount,
		Coins:    coins,
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent replay won the insert race and already
			// credited.
			log.Printf("Payment %s already credited, skipping", paymentID)
			return nil
		}
		// A genuine first delivery must not be acknowledged: the caller
		// surfaces the error so the provider redelivers.
		return err
	}

	user, err := l.userStore.GetUserByKey(userKey)
	if err != nil {
		return err
	}
	Earn(user, coins)
	return l.userStore.SaveUser(user)
}
