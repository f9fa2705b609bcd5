package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwangikib/dukapos-api/internal/config"
	domainRepo "github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/handler"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/middleware"
	"github.com/mwangikib/dukapos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Settings  *handler.SettingsHandler
	Promotion *handler.PromotionHandler
	Report    *handler.ReportHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-store rate limiter
		rateLimiter := middleware.NewStoreRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/validate-session", h.Auth.ValidateSession)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Products, categories and tax rates
	registerProductRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Promotions
	registerPromotionRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Store settings, branches and payment methods (admin)
	registerSettingsRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware so a retried
		// request never rings the same sale twice
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.POST("/hold", h.Order.Hold)
		orders.GET("/held", h.Order.ListHeld)
		orders.POST("/sync", h.Order.Sync)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/resume", h.Order.Resume)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/refund", middleware.RequireRole("admin"), h.Order.Refund)
		orders.DELETE("/:id", middleware.RequireRole("admin"), h.Order.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.POST("/:id/stock", h.Product.AdjustStock)
		products.DELETE("/:id", h.Product.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", h.Product.CreateCategory)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}

	taxRates := protected.Group("/tax-rates")
	taxRates.Use(middleware.RequireRole("admin"))
	{
		taxRates.GET("", h.Product.ListTaxRates)
		taxRates.POST("", h.Product.CreateTaxRate)
		taxRates.DELETE("/:id", h.Product.DeleteTaxRate)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/barcode/:barcode", h.Customer.GetByBarcode)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.POST("/:id/ewallet/topup", h.Customer.TopUpEwallet)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerPromotionRoutes(protected *gin.RouterGroup, h *Handlers) {
	promotions := protected.Group("/promotions")
	{
		// Cashiers only need code validation at the register
		promotions.GET("/validate/:code", h.Promotion.Validate)

		admin := promotions.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("", h.Promotion.List)
			admin.POST("", h.Promotion.Create)
			admin.PUT("/:id", h.Promotion.Update)
			admin.DELETE("/:id", h.Promotion.Delete)
		}
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole("admin"))
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/sales", h.Report.SalesReport)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("/store", h.Settings.GetStore)

		admin := settings.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.PUT("/store", h.Settings.UpdateStore)
			admin.GET("/branches", h.Settings.ListBranches)
			admin.POST("/branches", h.Settings.CreateBranch)
			admin.PUT("/branches/:id", h.Settings.UpdateBranch)
			admin.DELETE("/branches/:id", h.Settings.DeleteBranch)
		}
	}

	paymentMethods := protected.Group("/payment-methods")
	{
		paymentMethods.GET("", h.Settings.ListPaymentMethods)

		admin := paymentMethods.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", h.Settings.CreatePaymentMethod)
			admin.PUT("/:id", h.Settings.UpdatePaymentMethod)
			admin.DELETE("/:id", h.Settings.DeletePaymentMethod)
		}
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/receipt", h.Printer.Print)
		printerGroup.POST("/email", h.Printer.Email)
		printerGroup.GET("/receipt/:id", h.Printer.Preview)
	}
}
