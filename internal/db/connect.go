package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/models"
)

func ConnectDB(dbURL string) (*gorm.DB, error) {
	dbObj, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return dbObj, nil
}

func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Extraction{},
		&models.ExtractionMedia{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
