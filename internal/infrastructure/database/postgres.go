package database

import (
	"fmt"
	"log"
	"time"

	"github.com/mwangikib/dukapos-api/internal/config"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/pkg/utils"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Store entities
		&entity.Store{},
		&entity.Branch{},
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.TaxRate{},
		&entity.Product{},

		// Customer entities
		&entity.Customer{},

		// Checkout entities
		&entity.PaymentMethod{},
		&entity.Promotion{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderPayment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default store, payment methods,
// tax rates and the admin user configured via environment variables.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	storeName := viper.GetString("STORE_NAME")
	if storeName == "" {
		storeName = "Main Store"
	}

	var store entity.Store
	if err := db.Where("slug = ?", utils.Slugify(storeName)).First(&store).Error; err != nil {
		store = entity.Store{
			Name:     storeName,
			Slug:     utils.Slugify(storeName),
			IsActive: true,
		}
		if err := db.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to create default store: %w", err)
		}
		log.Printf("Default store created: %s", storeName)
	}

	// Default tender types
	methods := []entity.PaymentMethod{
		{StoreID: store.ID, Name: "Cash", Code: "cash", IsActive: true, SortOrder: 1},
		{StoreID: store.ID, Name: "Card", Code: "card", IsActive: true, SortOrder: 2},
		{StoreID: store.ID, Name: "M-Pesa", Code: "mpesa", IsActive: true, SortOrder: 3},
	}
	for i := range methods {
		var existing entity.PaymentMethod
		if err := db.Where("store_id = ? AND code = ?", store.ID, methods[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&methods[i]).Error; err != nil {
				log.Printf("Warning: failed to create payment method %s: %v", methods[i].Name, err)
			}
		}
	}

	// Default tax rates
	rates := []entity.TaxRate{
		{StoreID: store.ID, Name: "VAT", Rate: 16, IsDefault: true},
		{StoreID: store.ID, Name: "Zero Rated", Rate: 0},
	}
	for i := range rates {
		var existing entity.TaxRate
		if err := db.Where("store_id = ? AND name = ?", store.ID, rates[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&rates[i]).Error; err != nil {
				log.Printf("Warning: failed to create tax rate %s: %v", rates[i].Name, err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Store Admin"
				}
				// Split admin name into first and last name
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				now := time.Now()
				adminUser := entity.User{
					StoreID:   store.ID,
					FirstName: firstName,
					LastName:  lastName,
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      entity.RoleAdmin,
					IsActive:  true,
					CreatedAt: now,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
