package controller

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danbal6016-collab/jblack-tarot-sub000/config"
	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
	"github.com/danbal6016-collab/jblack-tarot-sub000/pkg"
)

// PaymentController handles HTTP requests
type PaymentController struct {
	paymentLogic *logic.PaymentLogic
	stripeClient *pkg.StripeClient
}

func NewPaymentController(paymentLogic *logic.PaymentLogic, stripeClient *pkg.StripeClient) *PaymentController {
	return &PaymentController{paymentLogic: paymentLogic, stripeClient: stripeClient}
}

// ListPackages handles GET /packages
func (c *PaymentController) ListPackages(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, config.GlobalConfig.Packages)
}

// CreateCheckout handles POST /payments/checkout
func (c *PaymentController) CreateCheckout(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}
	if extractIsGuest(ctx) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in required to purchase coins"})
		return
	}

	type Request struct {
		PackageID string `json:"package_id" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := c.paymentLogic.CreateCheckout(ctx.Request.Context(), userKey, req.PackageID)
	if err != nil {
		ctx.JSON(guardStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}

// CheckoutWebhook handles POST /payments/checkout/webhook. The provider
// retries deliveries, so processing must be idempotent; a replay is
// acknowledged without crediting twice.
func (c *PaymentController) CheckoutWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	event, err := c.stripeClient.ConstructWebhookEvent(payload, ctx.GetHeader("Stripe-Signature"), config.GlobalConfig.Stripe.WebhookSecret)
	if err != nil {
		log.Printf("Webhook signature rejected: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if err := c.paymentLogic.HandleCheckoutEvent(event); err != nil {
		log.Printf("Failed to process webhook event %s: %v", event.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}

// ConfirmPayment handles POST /payments/confirm
func (c *PaymentController) ConfirmPayment(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}
	if extractIsGuest(ctx) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in required to purchase coins"})
		return
	}

	type Request struct {
		PaymentKey string `json:"payment_key" binding:"required"`
		OrderID    string `json:"order_id" binding:"required"`
		PackageID  string `json:"package_id" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.paymentLogic.ConfirmAndCredit(ctx.Request.Context(), userKey, req.PaymentKey, req.OrderID, req.PackageID)
	if err != nil {
		ctx.JSON(guardStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
