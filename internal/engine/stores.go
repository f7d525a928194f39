package engine

import (
	"context"

	"github.com/ghatak0982/fleetcare/internal/models"
)

// Preference carries the per-owner settings the engine needs. Store
// implementations return defaults when the owner has never saved settings.
type Preference struct {
	EmailEnabled     bool
	PushEnabled      bool
	DaysBefore       int
	NotificationTime string
}

// DefaultPreference returns the canonical defaults applied when an owner has
// no stored preference row.
func DefaultPreference() Preference {
	return Preference{
		EmailEnabled:     true,
		PushEnabled:      false,
		DaysBefore:       15,
		NotificationTime: "09:00",
	}
}

// DueOwner identifies an owner whose configured notification time has been
// reached and whose watermark has not yet advanced to the current date.
type DueOwner struct {
	OwnerID string
	Name    string
	Email   string
}

// NotificationKey is the dedup key bounding each expiry occurrence to at most
// one notification per state class.
type NotificationKey struct {
	VehicleID    string
	DocumentType DocumentType
	ExpiryDate   string // 2006-01-02 in the run timezone
	StateClass   StateClass
}

// NotificationRecord is a notification-creation request emitted by the runner.
type NotificationRecord struct {
	Key NotificationKey

	OwnerID            string
	RegistrationNumber string
	Title              string
	Message            string
}

// VehicleStore supplies the vehicles needing evaluation for one owner.
type VehicleStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error)
}

// PreferenceStore supplies effective owner preferences (defaults when unset).
type PreferenceStore interface {
	Get(ctx context.Context, ownerID string) (Preference, error)
}

// ScheduleStore tracks the per-owner evaluation watermark.
//
// MarkEvaluated must be a conditional write: it only advances the watermark
// when the stored date is older than day, so overlapping runs cannot both
// claim the same calendar day.
type ScheduleStore interface {
	DueOwners(ctx context.Context, nowTime, today string) ([]DueOwner, error)
	MarkEvaluated(ctx context.Context, ownerID, day string) error
}

// NotificationStore persists notifications with create-if-absent semantics.
//
// CreateIfAbsent must be atomic with respect to the dedup key: when two
// writers race, exactly one observes created == true and the loser's write is
// a silent no-op, not an error.
type NotificationStore interface {
	Exists(ctx context.Context, key NotificationKey) (bool, error)
	CreateIfAbsent(ctx context.Context, rec NotificationRecord) (created bool, err error)
}
