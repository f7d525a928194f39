package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ghatak0982/fleetcare/internal/database/testutil"
	"github.com/ghatak0982/fleetcare/internal/engine"
	"github.com/ghatak0982/fleetcare/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, id, email string) models.User {
	t.Helper()
	user := models.User{BaseModel: models.BaseModel{ID: id}, Name: "Owner", Email: email, Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestPreferenceServiceDefaultsWhenUnset(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	seedUser(t, db, "user-1", "asha@example.com")

	svc, err := NewPreferenceService(db)
	require.NoError(t, err)

	pref, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, engine.DefaultPreference(), pref)

	settings, err := svc.Settings(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, settings.EmailEnabled)
	require.Equal(t, 15, settings.DaysBefore)
	require.Equal(t, "09:00", settings.NotificationTime)
}

func TestPreferenceServiceUpdate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	seedUser(t, db, "user-1", "asha@example.com")

	svc, err := NewPreferenceService(db)
	require.NoError(t, err)

	days := 30
	timeOfDay := "18:30"
	enabled := false
	updated, err := svc.Update(context.Background(), "user-1", UpdatePreferenceInput{
		EmailEnabled:     &enabled,
		DaysBefore:       &days,
		NotificationTime: &timeOfDay,
	})
	require.NoError(t, err)
	require.False(t, updated.EmailEnabled)
	require.Equal(t, 30, updated.DaysBefore)
	require.Equal(t, "18:30", updated.NotificationTime)

	pref, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 30, pref.DaysBefore)
	require.False(t, pref.EmailEnabled)
}

func TestPreferenceServiceUpdateValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	seedUser(t, db, "user-1", "asha@example.com")

	svc, err := NewPreferenceService(db)
	require.NoError(t, err)

	bad := 0
	_, err = svc.Update(context.Background(), "user-1", UpdatePreferenceInput{DaysBefore: &bad})
	require.Error(t, err)

	tooMany := 91
	_, err = svc.Update(context.Background(), "user-1", UpdatePreferenceInput{DaysBefore: &tooMany})
	require.Error(t, err)

	badTime := "25:99"
	_, err = svc.Update(context.Background(), "user-1", UpdatePreferenceInput{NotificationTime: &badTime})
	require.Error(t, err)
}

func TestPreferenceServiceDueOwners(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	seedUser(t, db, "user-1", "asha@example.com")
	seedUser(t, db, "user-2", "ravi@example.com")
	seedUser(t, db, "user-3", "meera@example.com")

	svc, err := NewPreferenceService(db)
	require.NoError(t, err)
	ctx := context.Background()

	// user-2 prefers evening notifications.
	evening := "18:00"
	_, err = svc.Update(ctx, "user-2", UpdatePreferenceInput{NotificationTime: &evening})
	require.NoError(t, err)

	// user-3 was already evaluated today.
	require.NoError(t, svc.MarkEvaluated(ctx, "user-3", "2024-01-01"))

	owners, err := svc.DueOwners(ctx, "09:30", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, owners, 1)
	require.Equal(t, "user-1", owners[0].OwnerID)
	require.Equal(t, "asha@example.com", owners[0].Email)

	// Evening pass picks up user-2 as well.
	owners, err = svc.DueOwners(ctx, "18:30", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, owners, 2)

	// The next day everyone is due again.
	owners, err = svc.DueOwners(ctx, "09:30", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, owners, 2)
}

func TestPreferenceServiceMarkEvaluated(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	seedUser(t, db, "user-1", "asha@example.com")

	svc, err := NewPreferenceService(db)
	require.NoError(t, err)
	ctx := context.Background()

	// Works even before the owner has a preference row.
	require.NoError(t, svc.MarkEvaluated(ctx, "user-1", "2024-01-01"))

	var row models.NotificationPreference
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&row).Error)
	require.Equal(t, "2024-01-01", row.LastEvaluatedOn)

	// The watermark never moves backwards.
	require.NoError(t, svc.MarkEvaluated(ctx, "user-1", "2023-12-25"))
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&row).Error)
	require.Equal(t, "2024-01-01", row.LastEvaluatedOn)

	require.NoError(t, svc.MarkEvaluated(ctx, "user-1", "2024-01-02"))
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&row).Error)
	require.Equal(t, "2024-01-02", row.LastEvaluatedOn)
}
