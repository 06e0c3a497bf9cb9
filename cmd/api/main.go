package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/scentworks/scentworks-api/internal/application/job"
	"github.com/scentworks/scentworks-api/internal/application/service"
	"github.com/scentworks/scentworks-api/internal/config"
	"github.com/scentworks/scentworks-api/internal/infrastructure/database"
	"github.com/scentworks/scentworks-api/internal/infrastructure/repository"
	"github.com/scentworks/scentworks-api/internal/presentation/http/handler"
	"github.com/scentworks/scentworks-api/internal/presentation/http/routes"
	"github.com/scentworks/scentworks-api/pkg/oauth"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

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
	supplierRepo := repository.NewSupplierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth provider
	googleProvider := oauth.NewGoogleProvider(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleRedirectURL,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleProvider)
	purchaseService := service.NewPurchaseService(purchaseRepo, supplierRepo, categoryRepo)
	supplierService := service.NewSupplierService(supplierRepo, purchaseRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	exportService := service.NewExportService(purchaseRepo)
	dashboardService := service.NewDashboardService(purchaseRepo, supplierRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Purchase:  handler.NewPurchaseHandler(purchaseService, exportService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Category:  handler.NewCategoryHandler(categoryService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Start the nightly aggregate reconciler
	if cfg.Reconcile.Enabled {
		reconciler := job.NewReconciler(purchaseRepo, idempotencyRepo, cfg.Reconcile.Schedule)
		if err := reconciler.Start(); err != nil {
			log.Fatalf("Failed to start aggregate reconciler: %v", err)
		}
		defer reconciler.Stop()
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
