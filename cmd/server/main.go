package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "kostpay-backend/internal/api/http"
	"kostpay-backend/internal/config"
	"kostpay-backend/internal/gateway"
	"kostpay-backend/internal/logger"
	"kostpay-backend/internal/repository/postgres"
	"kostpay-backend/internal/security"
	"kostpay-backend/internal/service"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting KostPay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Gateway configuration", "type", cfg.Gateway.Type, "base_url", cfg.Gateway.BaseURL)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Payment Gateway
	var paymentGateway gateway.PaymentGateway
	if cfg.Gateway.Type == "" || cfg.Gateway.Type == "mock" {
		logger.Info("Using mock payment gateway", "base_url", cfg.Gateway.BaseURL)
		paymentGateway = gateway.NewMockGateway(cfg.Gateway.BaseURL)
	} else {
		logger.Error("Unsupported gateway type", "type", cfg.Gateway.Type)
		log.Fatalf("Gateway type '%s' not yet implemented", cfg.Gateway.Type)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository, emailSvc, nil)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.PaymentRepository,
		store.AccountRepository,
		store.RoomRepository,
		paymentGateway,
		noteSvc,
		time.Duration(cfg.Booking.CheckInGraceHours)*time.Hour,
		time.Duration(cfg.Booking.PaymentDeadlineHours)*time.Hour,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		noteSvc,
	)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.AccountRepository)
	accountSvc := service.NewAccountService(store.AccountRepository)
	payoutSvc := service.NewPayoutService(
		store.PayoutRepository,
		store.BankAccountRepository,
		store.AccountRepository,
		store.LedgerRepository,
	)
	bankAccountSvc := service.NewBankAccountService(store.BankAccountRepository)

	// Initialize HTTP handlers
	bookingHandler := httpapi.NewBookingHandler(bookingSvc, paymentSvc)
	paymentHandler := httpapi.NewPaymentHandler(paymentSvc, cfg.Gateway.ServerKey)
	ledgerHandler := httpapi.NewLedgerHandler(ledgerSvc, accountSvc)
	payoutHandler := httpapi.NewPayoutHandler(payoutSvc)
	bankAccountHandler := httpapi.NewBankAccountHandler(bankAccountSvc)
	notificationHandler := httpapi.NewNotificationHandler(noteSvc)

	// Set up HTTP server
	router := mux.NewRouter()
	httpapi.RegisterRoutes(
		router,
		tokenManager,
		bookingHandler,
		paymentHandler,
		ledgerHandler,
		payoutHandler,
		bankAccountHandler,
		notificationHandler,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
