package models

// NotificationPreference holds per-owner alerting settings. One row per user;
// defaults apply when the row is absent.
//
// LastEvaluatedOn is the scheduling watermark: the last calendar date (in the
// engine's run timezone, formatted 2006-01-02) on which this owner's vehicles
// completed a full evaluation. It only advances after every tuple succeeds, so
// a partially failed batch is retried on the next tick.
type NotificationPreference struct {
	BaseModel

	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	EmailEnabled     bool   `gorm:"default:true" json:"email_enabled"`
	PushEnabled      bool   `gorm:"default:false" json:"push_enabled"`
	DaysBefore       int    `gorm:"default:15" json:"days_before"`
	NotificationTime string `gorm:"type:varchar(5);default:'09:00'" json:"notification_time"`

	LastEvaluatedOn string `gorm:"type:varchar(10);index" json:"-"`
}
