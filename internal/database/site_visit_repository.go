package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

// SiteVisitRepository handles site visit database operations
type SiteVisitRepository struct {
	db DB
}

// NewSiteVisitRepository creates a new site visit repository
func NewSiteVisitRepository(db DB) *SiteVisitRepository {
	return &SiteVisitRepository{
		db: db,
	}
}

// Create validates and inserts a visit booking with status pending
func (r *SiteVisitRepository) Create(v *models.SiteVisit) (*models.SiteVisit, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	v.ID = uuid.New()
	v.Status = models.VisitStatusPending
	v.CreatedAt = time.Now()

	query := `
		INSERT INTO site_visits (
			id, property_id, visitor_name, visitor_phone, visitor_email,
			preferred_date, preferred_time, message, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		v.ID,
		v.PropertyID,
		v.VisitorName,
		v.VisitorPhone,
		v.VisitorEmail,
		v.PreferredDate,
		v.PreferredTime,
		v.Message,
		v.Status,
		v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create site visit: %w", err)
	}

	return v, nil
}

// GetAll retrieves every visit booking with its property context joined in,
// newest first
func (r *SiteVisitRepository) GetAll() ([]*models.SiteVisit, error) {
	var visits []*models.SiteVisit

	query := `
		SELECT sv.id, sv.property_id, sv.visitor_name, sv.visitor_phone,
		       sv.visitor_email, sv.preferred_date, sv.preferred_time,
		       sv.message, sv.status, sv.created_at,
		       p.title as property_title, p.location_district, p.location_town
		FROM site_visits sv
		LEFT JOIN properties p ON sv.property_id = p.id
		ORDER BY sv.created_at DESC
	`

	err := r.db.Select(&visits, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list site visits: %w", err)
	}

	return visits, nil
}

// UpdateStatus sets a visit booking's status
func (r *SiteVisitRepository) UpdateStatus(id uuid.UUID, newStatus string) error {
	if !models.ValidVisitStatus(newStatus) {
		return models.ErrInvalidInput("invalid site visit status: " + newStatus)
	}

	result, err := r.db.Exec(`UPDATE site_visits SET status = $1 WHERE id = $2`, newStatus, id)
	if err != nil {
		return fmt.Errorf("failed to update site visit status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound("site visit", id.String())
	}

	return nil
}
