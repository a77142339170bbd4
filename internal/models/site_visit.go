package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Site visit statuses
const (
	VisitStatusPending   = "pending"
	VisitStatusConfirmed = "confirmed"
	VisitStatusCompleted = "completed"
	VisitStatusCancelled = "cancelled"
)

// SiteVisit is a scheduled viewing of a listed property
type SiteVisit struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PropertyID    uuid.UUID `json:"property_id" db:"property_id"`
	VisitorName   string    `json:"visitor_name" db:"visitor_name"`
	VisitorPhone  string    `json:"visitor_phone" db:"visitor_phone"`
	VisitorEmail  *string   `json:"visitor_email,omitempty" db:"visitor_email"`
	PreferredDate time.Time `json:"preferred_date" db:"preferred_date"`
	PreferredTime string    `json:"preferred_time" db:"preferred_time"`
	Message       *string   `json:"message,omitempty" db:"message"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Joined property context for the admin list view
	PropertyTitle    *string `json:"property_title,omitempty" db:"property_title"`
	LocationDistrict *string `json:"location_district,omitempty" db:"location_district"`
	LocationTown     *string `json:"location_town,omitempty" db:"location_town"`
}

// ValidVisitStatus reports whether s is one of the four visit statuses
func ValidVisitStatus(s string) bool {
	switch s {
	case VisitStatusPending, VisitStatusConfirmed,
		VisitStatusCompleted, VisitStatusCancelled:
		return true
	}
	return false
}

// Validate checks the required fields of a visit booking
func (v *SiteVisit) Validate() error {
	if v.PropertyID == uuid.Nil {
		return ErrInvalidInput("property id is required")
	}
	if strings.TrimSpace(v.VisitorName) == "" {
		return ErrInvalidInput("visitor name is required")
	}
	if strings.TrimSpace(v.VisitorPhone) == "" {
		return ErrInvalidInput("visitor phone is required")
	}
	if v.PreferredDate.IsZero() {
		return ErrInvalidInput("preferred date is required")
	}
	if strings.TrimSpace(v.PreferredTime) == "" {
		return ErrInvalidInput("preferred time is required")
	}
	return nil
}
