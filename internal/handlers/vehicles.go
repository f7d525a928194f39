package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ghatak0982/fleetcare/internal/middleware"
	"github.com/ghatak0982/fleetcare/internal/registry"
	"github.com/ghatak0982/fleetcare/internal/services"
	"github.com/ghatak0982/fleetcare/pkg/errors"
	"github.com/ghatak0982/fleetcare/pkg/response"
)

type createVehicleRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required,min=4,max=20"`
}

type bulkCreateVehiclesRequest struct {
	RegistrationNumbers []string `json:"registration_numbers" validate:"required,min=1,max=100,dive,min=4,max=20"`
}

// VehicleHandler exposes fleet vehicle endpoints.
type VehicleHandler struct {
	service *services.VehicleService
}

// NewVehicleHandler constructs a vehicle handler.
func NewVehicleHandler(db *gorm.DB, reg registry.Client) (*VehicleHandler, error) {
	service, err := services.NewVehicleService(db, reg)
	if err != nil {
		return nil, err
	}
	return &VehicleHandler{service: service}, nil
}

// List returns the current user's vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	vehicles, err := h.service.List(requestContext(c), services.ListVehiclesInput{
		UserID: userID,
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 100),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicles)
}

// Get returns one vehicle owned by the current user.
func (h *VehicleHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	vehicle, err := h.service.Get(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicle)
}

// Create registers a vehicle by registration number.
func (h *VehicleHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createVehicleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	vehicle, err := h.service.Create(requestContext(c), userID, req.RegistrationNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, vehicle)
}

// BulkCreate registers multiple vehicles, skipping failures.
func (h *VehicleHandler) BulkCreate(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req bulkCreateVehiclesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	created, skipped, err := h.service.BulkCreate(requestContext(c), userID, req.RegistrationNumbers)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"created": created,
		"skipped": skipped,
	})
}

// Refresh re-fetches registry data for one vehicle.
func (h *VehicleHandler) Refresh(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	vehicle, err := h.service.Refresh(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicle)
}

// Delete removes a vehicle and its notifications.
func (h *VehicleHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(requestContext(c), userID, strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "vehicle deleted"})
}
