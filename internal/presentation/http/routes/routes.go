package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentworks/scentworks-api/internal/config"
	domainRepo "github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/presentation/http/handler"
	"github.com/scentworks/scentworks-api/internal/presentation/http/middleware"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Purchase  *handler.PurchaseHandler
	Supplier  *handler.SupplierHandler
	Category  *handler.CategoryHandler
	Dashboard *handler.DashboardHandler
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
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Profile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Purchase orders. Submission replays through the idempotency cache so
	// a retried request cannot create a second order.
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}), h.Purchase.Create)
		purchases.POST("/preview", h.Purchase.Preview)
		purchases.GET("/export", h.Purchase.Export)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PATCH("/:id/delivery-status", h.Purchase.UpdateDeliveryStatus)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.GET("/:id/balance", h.Supplier.Balance)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", middleware.RequireRole(enum.UserRoleAdmin), h.Supplier.Delete)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", middleware.RequireRole(enum.UserRoleAdmin), h.Category.Delete)
	}
}
