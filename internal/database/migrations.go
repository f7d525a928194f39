package database

import (
	"gorm.io/gorm"

	"github.com/ghatak0982/fleetcare/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.NotificationPreference{},
		&models.Notification{},
	)
}
