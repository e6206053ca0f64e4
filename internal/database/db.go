package database

import (
	"fmt"
	"log"

	"restaurant-panel/internal/config"
	"restaurant-panel/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres and migrates the panel's tables.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database connection established, migration complete.")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.BankDetails{},
		&models.Payout{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	// meals_count can only go down through the conditional decrement, the
	// check guards against manual edits that would make it negative.
	if !db.Migrator().HasConstraint(&models.Product{}, "chk_products_meals_count") {
		if err := db.Exec("ALTER TABLE products ADD CONSTRAINT chk_products_meals_count CHECK (meals_count >= 0)").Error; err != nil {
			log.Printf("[WARN] could not add meals_count check constraint: %v", err)
		}
	}

	return nil
}
