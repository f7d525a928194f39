package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a persisted expiry alert for one (vehicle, document type,
// expiry date, state class) occurrence. The composite unique index is the
// dedup key: conditional creation against it guarantees at most one record
// per occurrence and state class even under concurrent writers.
type Notification struct {
	BaseModel

	UserID    string `gorm:"type:uuid;index;not null" json:"user_id"`
	VehicleID string `gorm:"type:uuid;uniqueIndex:idx_notifications_dedup;not null" json:"vehicle_id"`

	DocumentType string `gorm:"type:varchar(32);uniqueIndex:idx_notifications_dedup;not null" json:"document_type"`
	ExpiryDate   string `gorm:"type:varchar(10);uniqueIndex:idx_notifications_dedup;not null" json:"expiry_date"`
	StateClass   string `gorm:"type:varchar(32);uniqueIndex:idx_notifications_dedup;not null" json:"state_class"`

	Title    string         `gorm:"type:varchar(255);not null" json:"title"`
	Message  string         `gorm:"type:text" json:"message"`
	Metadata datatypes.JSON `json:"metadata"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}
