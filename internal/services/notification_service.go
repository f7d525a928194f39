package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ghatak0982/fleetcare/internal/engine"
	"github.com/ghatak0982/fleetcare/internal/models"
	apperrors "github.com/ghatak0982/fleetcare/pkg/errors"
)

// ListNotificationsInput defines filters for querying user notifications.
type ListNotificationsInput struct {
	UserID     string
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationService manages persisted expiry notifications. It is the
// gorm-backed engine.NotificationStore: the composite unique index on
// (vehicle_id, document_type, expiry_date, state_class) makes CreateIfAbsent
// atomic across concurrent evaluation passes.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db}, nil
}

// Exists reports whether a notification for the dedup key is already stored.
func (s *NotificationService) Exists(ctx context.Context, key engine.NotificationKey) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("vehicle_id = ? AND document_type = ? AND expiry_date = ? AND state_class = ?",
			key.VehicleID, string(key.DocumentType), key.ExpiryDate, string(key.StateClass)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("notification service: lookup dedup key: %w", err)
	}
	return count > 0, nil
}

// CreateIfAbsent inserts the notification unless its dedup key already exists.
// A lost insert race reports created == false with a nil error.
func (s *NotificationService) CreateIfAbsent(ctx context.Context, rec engine.NotificationRecord) (bool, error) {
	ctx = ensureContext(ctx)

	metadata, err := json.Marshal(map[string]any{
		"registration_number": rec.RegistrationNumber,
	})
	if err != nil {
		return false, fmt.Errorf("notification service: marshal metadata: %w", err)
	}

	notification := models.Notification{
		UserID:       rec.OwnerID,
		VehicleID:    rec.Key.VehicleID,
		DocumentType: string(rec.Key.DocumentType),
		ExpiryDate:   rec.Key.ExpiryDate,
		StateClass:   string(rec.Key.StateClass),
		Title:        rec.Title,
		Message:      rec.Message,
		Metadata:     datatypes.JSON(metadata),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "vehicle_id"},
				{Name: "document_type"},
				{Name: "expiry_date"},
				{Name: "state_class"},
			},
			DoNothing: true,
		}).
		Create(&notification)
	if result.Error != nil {
		return false, fmt.Errorf("notification service: create notification: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListForUser returns notifications for the supplied user ordered by recency.
func (s *NotificationService) ListForUser(ctx context.Context, input ListNotificationsInput) ([]models.Notification, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []models.Notification
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(max(0, input.Offset)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}
	return rows, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("notification service: count unread: %w", err)
	}
	return count, nil
}

// MarkRead sets the notification read flag for a user. Marking an already read
// notification is a no-op, not an error.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	if notification.IsRead {
		return &notification, nil
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&notification).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("notification service: mark read: %w", err)
	}

	notification.IsRead = true
	notification.ReadAt = &now
	return &notification, nil
}

// MarkAllRead marks all of the user's unread notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}
	return nil
}

// Delete removes a notification owned by the supplied user.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
