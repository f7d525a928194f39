package engine

import (
	"context"
	"errors"
	"fmt"
)

// Deduplicator decides whether a classified document state warrants a new
// notification, consulting the store for an existing record under the same
// dedup key. Classification and key derivation are pure; only the store
// lookup can fail.
type Deduplicator struct {
	store NotificationStore
}

// NewDeduplicator constructs a Deduplicator.
func NewDeduplicator(store NotificationStore) (*Deduplicator, error) {
	if store == nil {
		return nil, errors.New("deduplicator: notification store is required")
	}
	return &Deduplicator{store: store}, nil
}

// ShouldNotify reports whether a notification must be created for the given
// vehicle document occurrence. Valid and Unknown states never notify. For
// alert-worthy states the (vehicle, document, expiry date, state class) tuple
// is looked up; an existing record suppresses the notification, which makes
// repeated scans idempotent. A renewal changes the expiry date and therefore
// the key, restarting the cycle.
func (d *Deduplicator) ShouldNotify(ctx context.Context, vehicleID string, doc DocumentType, expiryDate string, state ComplianceState) (bool, NotificationKey, error) {
	class, ok := state.Class()
	if !ok {
		return false, NotificationKey{}, nil
	}

	key := NotificationKey{
		VehicleID:    vehicleID,
		DocumentType: doc,
		ExpiryDate:   expiryDate,
		StateClass:   class,
	}

	exists, err := d.store.Exists(ctx, key)
	if err != nil {
		return false, key, fmt.Errorf("deduplicator: lookup %s/%s: %w", vehicleID, doc, err)
	}

	return !exists, key, nil
}
