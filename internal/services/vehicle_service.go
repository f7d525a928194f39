package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ghatak0982/fleetcare/internal/models"
	"github.com/ghatak0982/fleetcare/internal/registry"
	apperrors "github.com/ghatak0982/fleetcare/pkg/errors"
)

// ListVehiclesInput defines filters for querying a user's vehicles.
type ListVehiclesInput struct {
	UserID string
	Search string
	Limit  int
	Offset int
}

// VehicleService manages fleet vehicles and their registry-sourced document
// dates. It is also the engine's vehicle store.
type VehicleService struct {
	db       *gorm.DB
	registry registry.Client
}

// NewVehicleService constructs a VehicleService.
func NewVehicleService(db *gorm.DB, reg registry.Client) (*VehicleService, error) {
	if db == nil {
		return nil, errors.New("vehicle service: db is required")
	}
	if reg == nil {
		return nil, errors.New("vehicle service: registry client is required")
	}
	return &VehicleService{db: db, registry: reg}, nil
}

// ListByOwner returns every vehicle the owner has registered.
func (s *VehicleService) ListByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error) {
	ctx = ensureContext(ctx)

	var rows []models.Vehicle
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("vehicle service: list vehicles: %w", err)
	}
	return rows, nil
}

// List returns the user's vehicles with optional registration-number search
// and pagination.
func (s *VehicleService) List(ctx context.Context, input ListVehiclesInput) ([]models.Vehicle, error) {
	ctx = ensureContext(ctx)
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errors.New("vehicle service: user id is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if search := strings.TrimSpace(input.Search); search != "" {
		query = query.Where("registration_number LIKE ?", "%"+strings.ToUpper(search)+"%")
	}

	var rows []models.Vehicle
	if err := query.
		Order("created_at ASC").
		Limit(limit).
		Offset(max(0, input.Offset)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("vehicle service: list vehicles: %w", err)
	}
	return rows, nil
}

// Get loads a single vehicle owned by the supplied user.
func (s *VehicleService) Get(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	ctx = ensureContext(ctx)

	var vehicle models.Vehicle
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", vehicleID, userID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("vehicle service: load vehicle: %w", err)
	}
	return &vehicle, nil
}

// Create registers a vehicle by registration number, fetching its document
// dates from the registry. Re-registering the same number for the same owner
// is a conflict.
func (s *VehicleService) Create(ctx context.Context, userID, registrationNumber string) (*models.Vehicle, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("vehicle service: user id is required")
	}
	registrationNumber = strings.ToUpper(strings.TrimSpace(registrationNumber))
	if registrationNumber == "" {
		return nil, apperrors.NewBadRequest("registration_number is required")
	}

	record, err := s.registry.Lookup(ctx, registrationNumber)
	if err != nil {
		return nil, fmt.Errorf("vehicle service: registry lookup %s: %w", registrationNumber, err)
	}

	vehicle := models.Vehicle{
		UserID:             userID,
		RegistrationNumber: record.RegistrationNumber,
		VehicleType:        record.VehicleType,
		OwnerName:          record.OwnerName,
		Manufacturer:       record.Manufacturer,
		Model:              record.Model,
		Year:               record.Year,
		RoadTaxExpiry:      record.RoadTaxExpiry,
		InsuranceExpiry:    record.InsuranceExpiry,
		PUCExpiry:          record.PUCExpiry,
		FitnessExpiry:      record.FitnessExpiry,
	}

	if err := s.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, apperrors.NewConflict("vehicle is already registered")
		}
		return nil, fmt.Errorf("vehicle service: create vehicle: %w", err)
	}
	return &vehicle, nil
}

// BulkCreate registers multiple vehicles in one call. Each number is handled
// independently: failures (including duplicates) are skipped and reported,
// never aborting the rest of the batch.
func (s *VehicleService) BulkCreate(ctx context.Context, userID string, registrationNumbers []string) ([]models.Vehicle, []string, error) {
	ctx = ensureContext(ctx)

	var (
		created []models.Vehicle
		skipped []string
	)
	seen := make(map[string]struct{}, len(registrationNumbers))
	for _, number := range registrationNumbers {
		number = strings.ToUpper(strings.TrimSpace(number))
		if number == "" {
			continue
		}
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}

		vehicle, err := s.Create(ctx, userID, number)
		if err != nil {
			skipped = append(skipped, number)
			continue
		}
		created = append(created, *vehicle)
	}

	if len(created) == 0 && len(skipped) > 0 {
		return nil, skipped, apperrors.NewBadRequest("no vehicles could be registered")
	}
	return created, skipped, nil
}

// Refresh re-fetches the vehicle's registry record and replaces its document
// dates. New expiry dates start fresh notification cycles.
func (s *VehicleService) Refresh(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	ctx = ensureContext(ctx)

	vehicle, err := s.Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	record, err := s.registry.Lookup(ctx, vehicle.RegistrationNumber)
	if err != nil {
		return nil, fmt.Errorf("vehicle service: registry lookup %s: %w", vehicle.RegistrationNumber, err)
	}

	updates := map[string]any{
		"vehicle_type":     record.VehicleType,
		"owner_name":       record.OwnerName,
		"manufacturer":     record.Manufacturer,
		"model":            record.Model,
		"year":             record.Year,
		"road_tax_expiry":  record.RoadTaxExpiry,
		"insurance_expiry": record.InsuranceExpiry,
		"puc_expiry":       record.PUCExpiry,
		"fitness_expiry":   record.FitnessExpiry,
	}
	if err := s.db.WithContext(ctx).Model(vehicle).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("vehicle service: refresh vehicle: %w", err)
	}

	return s.Get(ctx, userID, vehicleID)
}

// Delete removes a vehicle owned by the supplied user, along with its
// notifications.
func (s *VehicleService) Delete(ctx context.Context, userID, vehicleID string) error {
	ctx = ensureContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", vehicleID, userID).Delete(&models.Vehicle{})
		if result.Error != nil {
			return fmt.Errorf("vehicle service: delete vehicle: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}

		if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("vehicle service: delete vehicle notifications: %w", err)
		}
		return nil
	})
}

// isUniqueViolation matches driver-specific unique constraint errors that
// gorm does not translate to ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
