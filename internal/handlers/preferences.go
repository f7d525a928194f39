package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ghatak0982/fleetcare/internal/middleware"
	"github.com/ghatak0982/fleetcare/internal/services"
	"github.com/ghatak0982/fleetcare/pkg/errors"
	"github.com/ghatak0982/fleetcare/pkg/response"
)

type updatePreferencesRequest struct {
	EmailEnabled     *bool   `json:"email_enabled"`
	PushEnabled      *bool   `json:"push_enabled"`
	DaysBefore       *int    `json:"days_before" validate:"omitempty,min=1,max=90"`
	NotificationTime *string `json:"notification_time" validate:"omitempty,hhmm"`
}

// PreferenceHandler exposes the notification settings endpoints.
type PreferenceHandler struct {
	service *services.PreferenceService
}

// NewPreferenceHandler constructs a preference handler.
func NewPreferenceHandler(db *gorm.DB) (*PreferenceHandler, error) {
	service, err := services.NewPreferenceService(db)
	if err != nil {
		return nil, err
	}
	return &PreferenceHandler{service: service}, nil
}

// Get returns the current user's effective notification settings.
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	settings, err := h.service.Settings(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, settings)
}

// Update persists notification settings for the current user.
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updatePreferencesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	settings, err := h.service.Update(requestContext(c), userID, services.UpdatePreferenceInput{
		EmailEnabled:     req.EmailEnabled,
		PushEnabled:      req.PushEnabled,
		DaysBefore:       req.DaysBefore,
		NotificationTime: req.NotificationTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, settings)
}
