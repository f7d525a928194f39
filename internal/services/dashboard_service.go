package services

import (
	"context"
	"errors"
	"time"

	"github.com/ghatak0982/fleetcare/internal/engine"
)

const dashboardWindowDays = 30

// DashboardStats summarises fleet compliance for one owner.
type DashboardStats struct {
	TotalVehicles     int                         `json:"total_vehicles"`
	ExpiringThisMonth int                         `json:"expiring_this_month"`
	Overdue           map[engine.DocumentType]int `json:"overdue"`
	Unknown           int                         `json:"unknown"`
}

// DashboardService computes fleet compliance summaries. Classification goes
// through the same rules the evaluation engine uses, so the dashboard and the
// notifications never disagree about a document's state.
type DashboardService struct {
	vehicles *VehicleService
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(vehicles *VehicleService, loc *time.Location) (*DashboardService, error) {
	if vehicles == nil {
		return nil, errors.New("dashboard service: vehicle service is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		vehicles: vehicles,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// WithClock overrides the dashboard clock, for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	if now != nil {
		s.now = now
	}
	return s
}

// Stats aggregates compliance states across all of the owner's vehicles using
// a fixed 30-day window.
func (s *DashboardService) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	ctx = ensureContext(ctx)

	vehicles, err := s.vehicles.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalVehicles: len(vehicles),
		Overdue:       make(map[engine.DocumentType]int, len(engine.DocumentTypes())),
	}
	for _, doc := range engine.DocumentTypes() {
		stats.Overdue[doc] = 0
	}

	now := s.now().In(s.loc)
	for _, vehicle := range vehicles {
		for _, doc := range engine.DocumentTypes() {
			state := engine.Classify(engine.ExpiryOf(vehicle, doc), dashboardWindowDays, now, s.loc)
			switch state.Kind {
			case engine.StateExpired:
				stats.Overdue[doc]++
			case engine.StateExpiringSoon:
				stats.ExpiringThisMonth++
			case engine.StateUnknown:
				stats.Unknown++
			}
		}
	}

	return stats, nil
}
