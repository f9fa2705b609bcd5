package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/config"
	"github.com/mwangikib/dukapos-api/internal/events"
	"github.com/mwangikib/dukapos-api/internal/infrastructure/cache"
	"github.com/mwangikib/dukapos-api/internal/infrastructure/database"
	"github.com/mwangikib/dukapos-api/internal/infrastructure/repository"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/handler"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/routes"
	"github.com/mwangikib/dukapos-api/pkg/email"
	"github.com/mwangikib/dukapos-api/pkg/oauth"
	"github.com/mwangikib/dukapos-api/pkg/printer"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

const receiptCharWidth = 32

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Barcode lookup cache. An empty Redis host disables caching,
	// which keeps single-register installs free of extra moving parts.
	var productCache cache.ProductCache
	if cfg.Redis.Host != "" {
		productCache = cache.NewRedisProductCache(&cfg.Redis)
	} else {
		productCache = cache.NewNoopProductCache()
	}

	// Order event publisher
	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(&cfg.Kafka)
	} else {
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	productService := service.NewProductService(productRepo, categoryRepo, taxRateRepo, productCache)
	customerService := service.NewCustomerService(customerRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, paymentMethodRepo, promotionRepo, publisher)
	syncService := service.NewSyncService(orderService, idempotencyRepo)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo)
	promotionService := service.NewPromotionService(promotionRepo)
	storeService := service.NewStoreService(storeRepo, branchRepo)
	reportService := service.NewReportService(analyticsRepo, productRepo, cfg.Database.Timezone)
	printerService := service.NewPrinterService(orderRepo, storeRepo, userRepo, thermalPrinter, emailService, receiptCharWidth, cfg.Database.Timezone)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Order:     handler.NewOrderHandler(orderService, syncService),
		Settings:  handler.NewSettingsHandler(storeService, paymentMethodService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Report:    handler.NewReportHandler(reportService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
