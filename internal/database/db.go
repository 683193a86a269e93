package database

import (
	"fmt"

	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres database behind the saved-jobs store and
// migrates its schema.
func Connect(dsn string, log *logging.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database: empty DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	log.Info("database connection established")

	// Creates saved_jobs together with the (user_id, job_id) unique index.
	log.Info("running migrations")
	if err := db.AutoMigrate(&models.SavedJob{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// Close releases the pool under a gorm handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
