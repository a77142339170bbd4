package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Buyer request lifecycle statuses
const (
	RequestStatusActive    = "active"
	RequestStatusMatched   = "matched"
	RequestStatusFulfilled = "fulfilled"
	RequestStatusCancelled = "cancelled"
)

// BuyerRequest is a structured statement of a prospective buyer's search
// criteria. Utility requirement flags mean "must have" when true and
// "don't care" when false; minimum fields constrain matching only when set.
type BuyerRequest struct {
	ID                     uuid.UUID      `json:"id" db:"id"`
	UserID                 *uuid.UUID     `json:"user_id,omitempty" db:"user_id"`
	PropertyType           string         `json:"property_type" db:"property_type"`
	BudgetMin              float64        `json:"budget_min" db:"budget_min"`
	BudgetMax              float64        `json:"budget_max" db:"budget_max"`
	PreferredDistricts     pq.StringArray `json:"preferred_districts" db:"preferred_districts"`
	PreferredTowns         *string        `json:"preferred_towns,omitempty" db:"preferred_towns"`
	RequiresWater          bool           `json:"requires_water" db:"requires_water"`
	RequiresPower          bool           `json:"requires_power" db:"requires_power"`
	RequiresInternet       bool           `json:"requires_internet" db:"requires_internet"`
	MinBedrooms            *int           `json:"min_bedrooms,omitempty" db:"min_bedrooms"`
	MinBathrooms           *int           `json:"min_bathrooms,omitempty" db:"min_bathrooms"`
	MinSizeAcres           *float64       `json:"min_size_acres,omitempty" db:"min_size_acres"`
	MinSizeSqft            *float64       `json:"min_size_sqft,omitempty" db:"min_size_sqft"`
	AdditionalRequirements *string        `json:"additional_requirements,omitempty" db:"additional_requirements"`
	ContactName            string         `json:"contact_name" db:"contact_name"`
	ContactPhone           string         `json:"contact_phone" db:"contact_phone"`
	ContactEmail           *string        `json:"contact_email,omitempty" db:"contact_email"`
	Urgency                string         `json:"urgency" db:"urgency"`
	PreferredContactMethod string         `json:"preferred_contact_method" db:"preferred_contact_method"`
	Timeline               string         `json:"timeline" db:"timeline"`
	Status                 string         `json:"status" db:"status"`
	CreatedAt              time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at" db:"updated_at"`
}

// ValidRequestStatus reports whether s is one of the four request statuses
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusActive, RequestStatusMatched,
		RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// Validate checks the invariants of a buyer submission
func (r *BuyerRequest) Validate() error {
	if !ValidPropertyType(r.PropertyType) {
		return ErrInvalidInput("invalid property type: " + r.PropertyType)
	}
	if r.BudgetMin <= 0 || r.BudgetMax <= 0 {
		return ErrInvalidInput("budget bounds must be greater than zero")
	}
	if r.BudgetMin >= r.BudgetMax {
		return ErrInvalidInput("minimum budget must be less than maximum budget")
	}
	if len(r.PreferredDistricts) == 0 {
		return ErrInvalidInput("at least one preferred district is required")
	}
	if strings.TrimSpace(r.ContactName) == "" {
		return ErrInvalidInput("contact name is required")
	}
	if strings.TrimSpace(r.ContactPhone) == "" {
		return ErrInvalidInput("contact phone is required")
	}
	switch r.Urgency {
	case "", "low", "medium", "high":
	default:
		return ErrInvalidInput("invalid urgency: " + r.Urgency)
	}
	switch r.PreferredContactMethod {
	case "", "phone", "email", "whatsapp":
	default:
		return ErrInvalidInput("invalid preferred contact method: " + r.PreferredContactMethod)
	}
	switch r.Timeline {
	case "", "immediate", "1-3months", "3-6months", "6-12months":
	default:
		return ErrInvalidInput("invalid timeline: " + r.Timeline)
	}
	return nil
}

// BuyerRequestStats summarizes buyer demand for the admin dashboard
type BuyerRequestStats struct {
	TotalRequests     int `json:"total_requests" db:"total_requests"`
	ActiveRequests    int `json:"active_requests" db:"active_requests"`
	MatchedRequests   int `json:"matched_requests" db:"matched_requests"`
	FulfilledRequests int `json:"fulfilled_requests" db:"fulfilled_requests"`
	RecentRequests    int `json:"recent_requests" db:"recent_requests"`
}
