package engine

import (
	"time"

	"github.com/ghatak0982/fleetcare/internal/models"
)

// DocumentType identifies one of the regulatory documents tracked per vehicle.
type DocumentType string

const (
	DocumentRoadTax   DocumentType = "road_tax"
	DocumentInsurance DocumentType = "insurance"
	DocumentPUC       DocumentType = "puc"
	DocumentFitness   DocumentType = "fitness"
)

// DocumentTypes lists every tracked document in evaluation order.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentRoadTax, DocumentInsurance, DocumentPUC, DocumentFitness}
}

// Valid reports whether the document type is one of the tracked kinds.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentRoadTax, DocumentInsurance, DocumentPUC, DocumentFitness:
		return true
	}
	return false
}

// Label returns the human-readable document name used in notification text.
func (d DocumentType) Label() string {
	switch d {
	case DocumentRoadTax:
		return "Road tax"
	case DocumentInsurance:
		return "Insurance"
	case DocumentPUC:
		return "PUC certificate"
	case DocumentFitness:
		return "Fitness certificate"
	}
	return string(d)
}

// ExpiryOf extracts the expiry date for the given document from a vehicle.
// Nil means the document has not been fetched yet.
func ExpiryOf(v models.Vehicle, d DocumentType) *time.Time {
	switch d {
	case DocumentRoadTax:
		return v.RoadTaxExpiry
	case DocumentInsurance:
		return v.InsuranceExpiry
	case DocumentPUC:
		return v.PUCExpiry
	case DocumentFitness:
		return v.FitnessExpiry
	}
	return nil
}

// StateClass is the coarse alert category carried in the dedup key. Each
// expiry occurrence permits at most one notification per class.
type StateClass string

const (
	ClassExpiringSoon StateClass = "expiring_soon"
	ClassExpired      StateClass = "expired"
)
