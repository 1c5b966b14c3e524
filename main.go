package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/config"
	"github.com/danbal6016-collab/jblack-tarot-sub000/controller"
	"github.com/danbal6016-collab/jblack-tarot-sub000/dao"
	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
	"github.com/danbal6016-collab/jblack-tarot-sub000/middleware"
	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
	"github.com/danbal6016-collab/jblack-tarot-sub000/pkg"
)

const snapshotDebounce = 2 * time.Second

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	// Initialize database
	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey, which payment crediting relies on.
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Reading{}, &models.PaymentEvent{}, &models.SessionSnapshot{}, &models.GuestTrial{})

	// Initialize API clients
	geminiClient := pkg.NewGeminiClient(
		config.GlobalConfig.Gemini.APIKey,
		time.Duration(config.GlobalConfig.Gemini.TimeoutSeconds)*time.Second,
	)
	stripeClient := pkg.NewStripeClient(config.GlobalConfig.Stripe.SecretKey)
	tossClient := pkg.NewTossClient(config.GlobalConfig.Toss.SecretKey)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	readingDAO := dao.NewReadingDAO(db)
	paymentEventDAO := dao.NewPaymentEventDAO(db)
	sessionDAO := dao.NewSessionDAO(db)
	guestTrialDAO := dao.NewGuestTrialDAO(db)

	// Initialize Logics
	userLogic := logic.NewUserLogic(
		userDAO,
		config.GlobalConfig.Auth.Secret,
		config.GlobalConfig.Auth.UpstreamSecret,
		config.GlobalConfig.Auth.ExpHour,
	)
	sessionLogic := logic.NewSessionLogic(userDAO, sessionDAO)
	flowLogic := logic.NewFlowLogic(userDAO, sessionDAO, guestTrialDAO)
	readingLogic := logic.NewReadingLogic(
		userDAO, readingDAO, sessionDAO, guestTrialDAO,
		geminiClient, geminiClient,
		config.GlobalConfig.Gemini.TextModel,
		config.GlobalConfig.Gemini.ImageModel,
		time.Duration(config.GlobalConfig.Gemini.TimeoutSeconds)*time.Second,
		config.GlobalConfig.Gemini.MaxRetries,
	)
	paymentLogic := logic.NewPaymentLogic(userDAO, paymentEventDAO, stripeClient, tossClient)
	debouncer := logic.NewSnapshotDebouncer(sessionDAO, snapshotDebounce)

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic)
	sessionCtrl := controller.NewSessionController(sessionLogic, flowLogic, debouncer)
	readingCtrl := controller.NewReadingController(readingLogic)
	paymentCtrl := controller.NewPaymentController(paymentLogic, stripeClient)

	// Setup Gin router
	r := gin.Default()
	r.POST("/auth/login", userCtrl.Login)
	r.POST("/auth/guest", userCtrl.GuestLogin)
	r.GET("/user", middleware.Auth, userCtrl.GetUser)
	r.POST("/session/start", middleware.Auth, sessionCtrl.StartSession)
	r.PUT("/session/snapshot", middleware.Auth, sessionCtrl.SaveSnapshot)
	r.POST("/session/advance", middleware.Auth, sessionCtrl.Advance)
	r.POST("/readings", middleware.Auth, readingCtrl.CreateReading)
	r.GET("/readings", middleware.Auth, readingCtrl.GetReadings)
	r.GET("/readings/:id", middleware.Auth, readingCtrl.GetReading)
	r.GET("/packages", paymentCtrl.ListPackages)
	r.POST("/payments/checkout", middleware.Auth, paymentCtrl.CreateCheckout)
	r.POST("/payments/checkout/webhook", paymentCtrl.CheckoutWebhook)
	r.POST("/payments/confirm", middleware.Auth, paymentCtrl.ConfirmPayment)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
