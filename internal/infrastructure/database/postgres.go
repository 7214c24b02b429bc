package database

import (
	"fmt"
	"log"

	"github.com/restodesk/pos-api/internal/config"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

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

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Configuration entities
		&entity.PosSettings{},
		&entity.PaymentMethod{},

		// Submission entities
		&entity.PendingSubmission{},

		// Shift entities
		&entity.Shift{},
		&entity.ShiftLine{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the settings row and a base-currency
// cash method so a fresh install can take payments immediately
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var settings entity.PosSettings
	if err := db.First(&settings).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		settings = entity.PosSettings{BaseCurrency: "USD", RestaurantMode: true}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	var count int64
	if err := db.Model(&entity.PaymentMethod{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		cash := entity.PaymentMethod{
			Mode:         "Cash",
			Currency:     settings.BaseCurrency,
			ExchangeRate: decimal.NewFromInt(1),
			Enabled:      true,
		}
		if err := db.Create(&cash).Error; err != nil {
			return fmt.Errorf("failed to seed cash payment method: %w", err)
		}
	}

	log.Println("Default data seeded successfully")
	return nil
}
