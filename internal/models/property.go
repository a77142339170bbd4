package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Property type values
const (
	PropertyTypeLand       = "land"
	PropertyTypeHouse      = "house"
	PropertyTypeCommercial = "commercial"
	PropertyTypeApartment  = "apartment"
	PropertyTypeVilla      = "villa"
)

// Property lifecycle statuses
const (
	PropertyStatusPending   = "pending"
	PropertyStatusApproved  = "approved"
	PropertyStatusSold      = "sold"
	PropertyStatusWithdrawn = "withdrawn"
)

// Property represents a real-estate listing
type Property struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	Title                string     `json:"title" db:"title"`
	PropertyType         string     `json:"property_type" db:"property_type"`
	LocationDistrict     string     `json:"location_district" db:"location_district"`
	LocationTown         string     `json:"location_town" db:"location_town"`
	LocationVillage      *string    `json:"location_village,omitempty" db:"location_village"`
	DistanceFromMainRoad *string    `json:"distance_from_main_road,omitempty" db:"distance_from_main_road"`
	HasWater             bool       `json:"has_water" db:"has_water"`
	HasPower             bool       `json:"has_power" db:"has_power"`
	HasInternet          bool       `json:"has_internet" db:"has_internet"`
	SizeAcres            *float64   `json:"size_acres,omitempty" db:"size_acres"`
	SizeSqft             *float64   `json:"size_sqft,omitempty" db:"size_sqft"`
	Bedrooms             *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms            *int       `json:"bathrooms,omitempty" db:"bathrooms"`
	AskingPrice          float64    `json:"asking_price" db:"asking_price"`
	Description          *string    `json:"description,omitempty" db:"description"`
	OwnerName            string     `json:"owner_name" db:"owner_name"`
	OwnerPhone           string     `json:"owner_phone" db:"owner_phone"`
	OwnerEmail           *string    `json:"owner_email,omitempty" db:"owner_email"`
	Status               string     `json:"status" db:"status"`
	SubmittedBy          *uuid.UUID `json:"submitted_by,omitempty" db:"submitted_by"`
	ApprovedBy           *uuid.UUID `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt           *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`

	// Attached child records, always non-nil in repository results
	Images []PropertyImage `json:"property_images" db:"-"`
}

// PropertyImage is an ordered image attached to a property
type PropertyImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	ImageOrder int       `json:"image_order" db:"image_order"`
	IsPrimary  bool      `json:"is_primary" db:"is_primary"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ValidPropertyType reports whether t is one of the five listing types
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeLand, PropertyTypeHouse, PropertyTypeCommercial,
		PropertyTypeApartment, PropertyTypeVilla:
		return true
	}
	return false
}

// ValidPropertyStatus reports whether s is one of the four lifecycle statuses
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusPending, PropertyStatusApproved,
		PropertyStatusSold, PropertyStatusWithdrawn:
		return true
	}
	return false
}

// CanTransitionStatus reports whether a property may move from one status
// to another. Listings start as pending, are approved or withdrawn by an
// admin, and approved listings can be marked sold. Nothing returns to
// pending.
func CanTransitionStatus(from, to string) bool {
	switch from {
	case PropertyStatusPending:
		return to == PropertyStatusApproved || to == PropertyStatusWithdrawn
	case PropertyStatusApproved:
		return to == PropertyStatusSold || to == PropertyStatusWithdrawn
	}
	return false
}

// Validate checks the required fields of a seller submission
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrInvalidInput("title is required")
	}
	if !ValidPropertyType(p.PropertyType) {
		return ErrInvalidInput("invalid property type: " + p.PropertyType)
	}
	if strings.TrimSpace(p.LocationDistrict) == "" {
		return ErrInvalidInput("location district is required")
	}
	if strings.TrimSpace(p.LocationTown) == "" {
		return ErrInvalidInput("location town is required")
	}
	if p.AskingPrice <= 0 {
		return ErrInvalidInput("asking price must be greater than zero")
	}
	if p.SizeAcres != nil && *p.SizeAcres <= 0 {
		return ErrInvalidInput("size in acres must be greater than zero")
	}
	if p.SizeSqft != nil && *p.SizeSqft <= 0 {
		return ErrInvalidInput("size in square feet must be greater than zero")
	}
	if strings.TrimSpace(p.OwnerName) == "" {
		return ErrInvalidInput("owner name is required")
	}
	if strings.TrimSpace(p.OwnerPhone) == "" {
		return ErrInvalidInput("owner phone is required")
	}
	return nil
}

// PropertyFilter is the set of optional predicates for public listing
// queries. All supplied predicates are ANDed together; zero values mean
// "no constraint".
type PropertyFilter struct {
	PropertyType string   `json:"property_type,omitempty" form:"property_type"`
	District     string   `json:"district,omitempty" form:"district"`
	MinPrice     *float64 `json:"min_price,omitempty" form:"min_price"`
	MaxPrice     *float64 `json:"max_price,omitempty" form:"max_price"`
	HasWater     bool     `json:"has_water,omitempty" form:"has_water"`
	HasPower     bool     `json:"has_power,omitempty" form:"has_power"`
	HasInternet  bool     `json:"has_internet,omitempty" form:"has_internet"`
	Search       string   `json:"search,omitempty" form:"search"`
}

// IsEmpty reports whether the filter applies no constraints at all
func (f PropertyFilter) IsEmpty() bool {
	return f.PropertyType == "" && f.District == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		!f.HasWater && !f.HasPower && !f.HasInternet &&
		strings.TrimSpace(f.Search) == ""
}

// PropertyStats summarizes listing inventory for the admin dashboard
type PropertyStats struct {
	TotalProperties    int      `json:"total_properties" db:"total_properties"`
	PendingProperties  int      `json:"pending_properties" db:"pending_properties"`
	ApprovedProperties int      `json:"approved_properties" db:"approved_properties"`
	SoldProperties     int      `json:"sold_properties" db:"sold_properties"`
	AveragePrice       *float64 `json:"average_price" db:"average_price"`
	RecentProperties   int      `json:"recent_properties" db:"recent_properties"`
}
