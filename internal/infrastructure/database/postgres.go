package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scentworks/scentworks-api/internal/config"
	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Supplier{},
		&entity.Category{},
		&entity.PurchaseOrder{},
		&entity.PurchaseItem{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default categories and, when
// configured, the initial admin account.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	var adminID *string
	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrator"
				}
				admin := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     enum.UserRoleAdmin,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					id := admin.ID.String()
					adminID = &id
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			id := existing.ID.String()
			adminID = &id
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	// Default purchase categories for a scenting-services business
	if adminID != nil {
		owner, err := utils.ParseUUID(*adminID)
		if err == nil {
			defaults := []string{"Scent Oils", "Diffuser Devices", "Spare Parts", "Packaging", "Office Supplies"}
			for _, name := range defaults {
				slug := utils.Slugify(name)
				var existing entity.Category
				if err := db.Where("slug = ?", slug).First(&existing).Error; err != nil {
					cat := entity.Category{UserID: owner, Name: name, Slug: slug}
					if err := db.Create(&cat).Error; err != nil {
						log.Printf("Warning: failed to seed category %s: %v", name, err)
					}
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
