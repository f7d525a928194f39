package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ghatak0982/fleetcare/internal/engine"
	"github.com/ghatak0982/fleetcare/internal/models"
	apperrors "github.com/ghatak0982/fleetcare/pkg/errors"
)

// UpdatePreferenceInput carries the owner-editable alerting settings. Nil
// fields are left unchanged.
type UpdatePreferenceInput struct {
	EmailEnabled     *bool   `json:"email_enabled"`
	PushEnabled      *bool   `json:"push_enabled"`
	DaysBefore       *int    `json:"days_before"`
	NotificationTime *string `json:"notification_time"`
}

// PreferenceService manages per-owner notification settings and the
// evaluation watermark. It backs both the preference and schedule stores of
// the evaluation engine.
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(db *gorm.DB) (*PreferenceService, error) {
	if db == nil {
		return nil, errors.New("preference service: db is required")
	}
	return &PreferenceService{db: db}, nil
}

// Get returns the owner's effective preferences, falling back to defaults
// when no row has been saved.
func (s *PreferenceService) Get(ctx context.Context, ownerID string) (engine.Preference, error) {
	ctx = ensureContext(ctx)

	var row models.NotificationPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.DefaultPreference(), nil
	}
	if err != nil {
		return engine.Preference{}, fmt.Errorf("preference service: load preferences: %w", err)
	}

	return effectivePreference(row), nil
}

// Settings returns the stored preference row for the API, with defaults
// applied when the owner has never saved settings.
func (s *PreferenceService) Settings(ctx context.Context, ownerID string) (*models.NotificationPreference, error) {
	ctx = ensureContext(ctx)

	var row models.NotificationPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := engine.DefaultPreference()
		return &models.NotificationPreference{
			UserID:           ownerID,
			EmailEnabled:     defaults.EmailEnabled,
			PushEnabled:      defaults.PushEnabled,
			DaysBefore:       defaults.DaysBefore,
			NotificationTime: defaults.NotificationTime,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preference service: load preferences: %w", err)
	}

	applyDefaults(&row)
	return &row, nil
}

// Update persists the supplied settings, creating the preference row on first
// save. The watermark is never touched here.
func (s *PreferenceService) Update(ctx context.Context, ownerID string, input UpdatePreferenceInput) (*models.NotificationPreference, error) {
	ctx = ensureContext(ctx)
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, errors.New("preference service: user id is required")
	}

	if input.DaysBefore != nil && (*input.DaysBefore < 1 || *input.DaysBefore > 90) {
		return nil, apperrors.NewBadRequest("days_before must be between 1 and 90")
	}
	if input.NotificationTime != nil {
		if _, err := time.Parse("15:04", *input.NotificationTime); err != nil {
			return nil, apperrors.NewBadRequest("notification_time must be in HH:MM format")
		}
	}

	row, err := s.ensureRow(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.EmailEnabled != nil {
		updates["email_enabled"] = *input.EmailEnabled
	}
	if input.PushEnabled != nil {
		updates["push_enabled"] = *input.PushEnabled
	}
	if input.DaysBefore != nil {
		updates["days_before"] = *input.DaysBefore
	}
	if input.NotificationTime != nil {
		updates["notification_time"] = *input.NotificationTime
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("preference service: update preferences: %w", err)
		}
	}

	var fresh models.NotificationPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&fresh).Error; err != nil {
		return nil, fmt.Errorf("preference service: reload preferences: %w", err)
	}
	applyDefaults(&fresh)
	return &fresh, nil
}

// DueOwners lists owners whose configured notification time has passed and
// whose watermark is behind today. Owners without a preference row fall back
// to the default time, so they are never silently excluded.
func (s *PreferenceService) DueOwners(ctx context.Context, nowTime, today string) ([]engine.DueOwner, error) {
	ctx = ensureContext(ctx)

	defaults := engine.DefaultPreference()

	var rows []struct {
		ID    string
		Name  string
		Email string
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id, u.name, u.email
		FROM users u
		LEFT JOIN notification_preferences p ON p.user_id = u.id
		WHERE COALESCE(NULLIF(p.notification_time, ''), ?) <= ?
		  AND COALESCE(p.last_evaluated_on, '') < ?
		ORDER BY u.id`,
		defaults.NotificationTime, nowTime, today,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("preference service: list due owners: %w", err)
	}

	owners := make([]engine.DueOwner, 0, len(rows))
	for _, row := range rows {
		owners = append(owners, engine.DueOwner{
			OwnerID: row.ID,
			Name:    row.Name,
			Email:   row.Email,
		})
	}
	return owners, nil
}

// MarkEvaluated advances the owner's watermark to day. The update is
// conditional on the stored date being older, so overlapping passes cannot
// both claim the same calendar day.
func (s *PreferenceService) MarkEvaluated(ctx context.Context, ownerID, day string) error {
	ctx = ensureContext(ctx)

	advance := func() (int64, error) {
		result := s.db.WithContext(ctx).
			Model(&models.NotificationPreference{}).
			Where("user_id = ? AND COALESCE(last_evaluated_on, '') < ?", ownerID, day).
			Update("last_evaluated_on", day)
		return result.RowsAffected, result.Error
	}

	affected, err := advance()
	if err != nil {
		return fmt.Errorf("preference service: advance watermark: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Either the watermark is already current or the owner has no preference
	// row yet. Create the row and retry once.
	if _, err := s.ensureRow(ctx, ownerID); err != nil {
		return err
	}
	if _, err := advance(); err != nil {
		return fmt.Errorf("preference service: advance watermark: %w", err)
	}
	return nil
}

// ensureRow creates the owner's preference row with defaults if it is absent.
func (s *PreferenceService) ensureRow(ctx context.Context, ownerID string) (*models.NotificationPreference, error) {
	defaults := engine.DefaultPreference()
	row := models.NotificationPreference{
		UserID:           ownerID,
		EmailEnabled:     defaults.EmailEnabled,
		PushEnabled:      defaults.PushEnabled,
		DaysBefore:       defaults.DaysBefore,
		NotificationTime: defaults.NotificationTime,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("preference service: ensure preference row: %w", err)
	}

	var fresh models.NotificationPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&fresh).Error; err != nil {
		return nil, fmt.Errorf("preference service: load preference row: %w", err)
	}
	return &fresh, nil
}

func effectivePreference(row models.NotificationPreference) engine.Preference {
	applyDefaults(&row)
	return engine.Preference{
		EmailEnabled:     row.EmailEnabled,
		PushEnabled:      row.PushEnabled,
		DaysBefore:       row.DaysBefore,
		NotificationTime: row.NotificationTime,
	}
}

func applyDefaults(row *models.NotificationPreference) {
	defaults := engine.DefaultPreference()
	if row.DaysBefore <= 0 {
		row.DaysBefore = defaults.DaysBefore
	}
	if row.NotificationTime == "" {
		row.NotificationTime = defaults.NotificationTime
	}
}
