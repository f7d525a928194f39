package models

import "time"

// Vehicle tracks one fleet vehicle and the expiry dates of its regulatory
// documents. Expiry fields are nil until the first registry fetch completes.
type Vehicle struct {
	BaseModel

	UserID             string `gorm:"type:uuid;index;uniqueIndex:idx_vehicles_owner_regno;not null" json:"user_id"`
	RegistrationNumber string `gorm:"uniqueIndex:idx_vehicles_owner_regno;not null" json:"registration_number"`

	VehicleType  string `gorm:"default:'Commercial Vehicle'" json:"vehicle_type"`
	OwnerName    string `json:"owner_name"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         int    `json:"year"`

	RoadTaxExpiry   *time.Time `json:"road_tax_expiry"`
	InsuranceExpiry *time.Time `json:"insurance_expiry"`
	PUCExpiry       *time.Time `json:"puc_expiry"`
	FitnessExpiry   *time.Time `json:"fitness_expiry"`
}
