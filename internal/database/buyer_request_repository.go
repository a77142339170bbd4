package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

const buyerRequestColumns = `id, user_id, property_type, budget_min, budget_max,
	       preferred_districts, preferred_towns, requires_water, requires_power,
	       requires_internet, min_bedrooms, min_bathrooms, min_size_acres,
	       min_size_sqft, additional_requirements, contact_name, contact_phone,
	       contact_email, urgency, preferred_contact_method, timeline, status,
	       created_at, updated_at`

// BuyerRequestRepository handles buyer request database operations
type BuyerRequestRepository struct {
	db DB
}

// NewBuyerRequestRepository creates a new buyer request repository
func NewBuyerRequestRepository(db DB) *BuyerRequestRepository {
	return &BuyerRequestRepository{
		db: db,
	}
}

// Create validates and inserts a buyer request. Status is forced to active
// regardless of caller input.
func (r *BuyerRequestRepository) Create(req *models.BuyerRequest) (*models.BuyerRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.ID = uuid.New()
	req.Status = models.RequestStatusActive
	if req.Urgency == "" {
		req.Urgency = "medium"
	}
	if req.PreferredContactMethod == "" {
		req.PreferredContactMethod = "phone"
	}
	if req.Timeline == "" {
		req.Timeline = "3-6months"
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	query := `
		INSERT INTO buyer_requests (
			id, user_id, property_type, budget_min, budget_max,
			preferred_districts, preferred_towns, requires_water, requires_power,
			requires_internet, min_bedrooms, min_bathrooms, min_size_acres,
			min_size_sqft, additional_requirements, contact_name, contact_phone,
			contact_email, urgency, preferred_contact_method, timeline, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
	`

	_, err := r.db.Exec(
		query,
		req.ID,
		req.UserID,
		req.PropertyType,
		req.BudgetMin,
		req.BudgetMax,
		req.PreferredDistricts,
		req.PreferredTowns,
		req.RequiresWater,
		req.RequiresPower,
		req.RequiresInternet,
		req.MinBedrooms,
		req.MinBathrooms,
		req.MinSizeAcres,
		req.MinSizeSqft,
		req.AdditionalRequirements,
		req.ContactName,
		req.ContactPhone,
		req.ContactEmail,
		req.Urgency,
		req.PreferredContactMethod,
		req.Timeline,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create buyer request: %w", err)
	}

	return req, nil
}

// GetAll retrieves every buyer request, newest first
func (r *BuyerRequestRepository) GetAll() ([]*models.BuyerRequest, error) {
	var requests []*models.BuyerRequest

	query := `
		SELECT ` + buyerRequestColumns + `
		FROM buyer_requests
		ORDER BY created_at DESC
	`

	err := r.db.Select(&requests, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buyer requests: %w", err)
	}

	return requests, nil
}

// GetByID retrieves a buyer request. Returns (nil, nil) when absent.
func (r *BuyerRequestRepository) GetByID(id uuid.UUID) (*models.BuyerRequest, error) {
	var req models.BuyerRequest

	query := `
		SELECT ` + buyerRequestColumns + `
		FROM buyer_requests
		WHERE id = $1
	`

	err := r.db.Get(&req, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get buyer request by ID: %w", err)
	}

	return &req, nil
}

// UpdateStatus sets a buyer request's status. Requests move freely between
// the four statuses; matching never does this implicitly.
func (r *BuyerRequestRepository) UpdateStatus(id uuid.UUID, newStatus string) (*models.BuyerRequest, error) {
	if !models.ValidRequestStatus(newStatus) {
		return nil, models.ErrInvalidInput("invalid buyer request status: " + newStatus)
	}

	query := `
		UPDATE buyer_requests
		SET status = $1,
		    updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, newStatus, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update buyer request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, models.ErrNotFound("buyer request", id.String())
	}

	return r.GetByID(id)
}

// GetStats summarizes buyer demand for the admin dashboard
func (r *BuyerRequestRepository) GetStats() (*models.BuyerRequestStats, error) {
	var stats models.BuyerRequestStats

	query := `
		SELECT
			COUNT(*) as total_requests,
			COUNT(*) FILTER (WHERE status = 'active') as active_requests,
			COUNT(*) FILTER (WHERE status = 'matched') as matched_requests,
			COUNT(*) FILTER (WHERE status = 'fulfilled') as fulfilled_requests,
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days') as recent_requests
		FROM buyer_requests
	`

	err := r.db.Get(&stats, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer request stats: %w", err)
	}

	return &stats, nil
}
