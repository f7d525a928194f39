package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghatak0982/fleetcare/internal/middleware"
	"github.com/ghatak0982/fleetcare/internal/services"
	"github.com/ghatak0982/fleetcare/pkg/errors"
	"github.com/ghatak0982/fleetcare/pkg/response"
)

// DashboardHandler exposes fleet compliance summary endpoints.
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service *services.DashboardService) (*DashboardHandler, error) {
	if service == nil {
		return nil, stderrors.New("dashboard handler: service is required")
	}
	return &DashboardHandler{service: service}, nil
}

// Stats returns the current user's compliance summary.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	stats, err := h.service.Stats(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
