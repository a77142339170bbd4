package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

// propertyColumns is the full column list selected for property rows
const propertyColumns = `id, title, property_type, location_district, location_town,
	       location_village, distance_from_main_road, has_water, has_power,
	       has_internet, size_acres, size_sqft, bedrooms, bathrooms,
	       asking_price, description, owner_name, owner_phone, owner_email,
	       status, submitted_by, approved_by, approved_at, created_at, updated_at`

// PropertyRepository handles property database operations
type PropertyRepository struct {
	db DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db DB) *PropertyRepository {
	return &PropertyRepository{
		db: db,
	}
}

// Create validates and inserts a seller submission. New listings always
// start as pending regardless of caller input.
func (r *PropertyRepository) Create(p *models.Property) (*models.Property, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = uuid.New()
	p.Status = models.PropertyStatusPending
	p.ApprovedBy = nil
	p.ApprovedAt = nil
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	query := `
		INSERT INTO properties (
			id, title, property_type, location_district, location_town,
			location_village, distance_from_main_road, has_water, has_power,
			has_internet, size_acres, size_sqft, bedrooms, bathrooms,
			asking_price, description, owner_name, owner_phone, owner_email,
			status, submitted_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)
	`

	_, err := r.db.Exec(
		query,
		p.ID,
		p.Title,
		p.PropertyType,
		p.LocationDistrict,
		p.LocationTown,
		p.LocationVillage,
		p.DistanceFromMainRoad,
		p.HasWater,
		p.HasPower,
		p.HasInternet,
		p.SizeAcres,
		p.SizeSqft,
		p.Bedrooms,
		p.Bathrooms,
		p.AskingPrice,
		p.Description,
		p.OwnerName,
		p.OwnerPhone,
		p.OwnerEmail,
		p.Status,
		p.SubmittedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	p.Images = []models.PropertyImage{}
	return p, nil
}

// GetApproved retrieves all approved listings, newest first, with their
// image lists attached
func (r *PropertyRepository) GetApproved() ([]*models.Property, error) {
	var properties []*models.Property

	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE status = $1
		ORDER BY created_at DESC
	`

	err := r.db.Select(&properties, query, models.PropertyStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved properties: %w", err)
	}

	if err := r.attachImages(properties); err != nil {
		return nil, err
	}

	return properties, nil
}

// GetAll retrieves every listing regardless of status (admin view),
// newest first, with images attached
func (r *PropertyRepository) GetAll() ([]*models.Property, error) {
	var properties []*models.Property

	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at DESC
	`

	err := r.db.Select(&properties, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	if err := r.attachImages(properties); err != nil {
		return nil, err
	}

	return properties, nil
}

// GetByID retrieves a single approved listing with images. Returns
// (nil, nil) when the id is unknown or the listing is not approved.
func (r *PropertyRepository) GetByID(id uuid.UUID) (*models.Property, error) {
	return r.getOne(id, true)
}

// GetByIDAdmin retrieves a single listing in any status with images.
// Returns (nil, nil) when the id is unknown.
func (r *PropertyRepository) GetByIDAdmin(id uuid.UUID) (*models.Property, error) {
	return r.getOne(id, false)
}

func (r *PropertyRepository) getOne(id uuid.UUID, approvedOnly bool) (*models.Property, error) {
	var property models.Property

	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1
	`
	args := []interface{}{id}
	if approvedOnly {
		query += ` AND status = $2`
		args = append(args, models.PropertyStatusApproved)
	}

	err := r.db.Get(&property, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property by ID: %w", err)
	}

	images, err := r.GetImages(property.ID)
	if err != nil {
		return nil, err
	}
	property.Images = images

	return &property, nil
}

// attachImages loads the image lists for a batch of properties in a single
// query and groups them in memory, so a listing page of any size costs
// exactly two round-trips
func (r *PropertyRepository) attachImages(properties []*models.Property) error {
	for _, p := range properties {
		p.Images = []models.PropertyImage{}
	}
	if len(properties) == 0 {
		return nil
	}

	ids := make([]string, 0, len(properties))
	byID := make(map[uuid.UUID]*models.Property, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID.String())
		byID[p.ID] = p
	}

	var images []models.PropertyImage

	query := `
		SELECT id, property_id, image_url, image_order, is_primary, created_at
		FROM property_images
		WHERE property_id = ANY($1::uuid[])
		ORDER BY image_order ASC
	`

	err := r.db.Select(&images, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load property images: %w", err)
	}

	for _, img := range images {
		if p, ok := byID[img.PropertyID]; ok {
			p.Images = append(p.Images, img)
		}
	}

	return nil
}

// UpdateStatus moves a listing through its lifecycle. Approval records the
// approver and timestamp together; illegal transitions are rejected.
func (r *PropertyRepository) UpdateStatus(id uuid.UUID, newStatus string, approvedBy *uuid.UUID) (*models.Property, error) {
	if !models.ValidPropertyStatus(newStatus) {
		return nil, models.ErrInvalidInput("invalid property status: " + newStatus)
	}

	var currentStatus string
	err := r.db.QueryRow(`SELECT status FROM properties WHERE id = $1`, id).Scan(&currentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound("property", id.String())
		}
		return nil, fmt.Errorf("failed to get property status: %w", err)
	}

	if !models.CanTransitionStatus(currentStatus, newStatus) {
		return nil, models.ErrInvalidInput(
			fmt.Sprintf("cannot change property status from %s to %s", currentStatus, newStatus))
	}

	if newStatus == models.PropertyStatusApproved {
		if approvedBy == nil {
			return nil, models.ErrInvalidInput("approving a property requires an approver")
		}
		query := `
			UPDATE properties
			SET status = $1,
			    approved_by = $2,
			    approved_at = $3,
			    updated_at = $3
			WHERE id = $4
		`
		if _, err := r.db.Exec(query, newStatus, *approvedBy, time.Now(), id); err != nil {
			return nil, fmt.Errorf("failed to approve property: %w", err)
		}
	} else {
		query := `
			UPDATE properties
			SET status = $1,
			    updated_at = $2
			WHERE id = $3
		`
		if _, err := r.db.Exec(query, newStatus, time.Now(), id); err != nil {
			return nil, fmt.Errorf("failed to update property status: %w", err)
		}
	}

	return r.GetByIDAdmin(id)
}

// PropertyUpdate holds the admin-editable listing fields; nil fields are
// left unchanged
type PropertyUpdate struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	PropertyType *string  `json:"property_type"`
	AskingPrice  *float64 `json:"asking_price"`
}

// Update applies a partial admin edit to a listing
func (r *PropertyRepository) Update(id uuid.UUID, updates PropertyUpdate) (*models.Property, error) {
	if updates.PropertyType != nil && !models.ValidPropertyType(*updates.PropertyType) {
		return nil, models.ErrInvalidInput("invalid property type: " + *updates.PropertyType)
	}
	if updates.AskingPrice != nil && *updates.AskingPrice <= 0 {
		return nil, models.ErrInvalidInput("asking price must be greater than zero")
	}

	query := `
		UPDATE properties
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    property_type = COALESCE($3, property_type),
		    asking_price = COALESCE($4, asking_price),
		    updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(query, updates.Title, updates.Description,
		updates.PropertyType, updates.AskingPrice, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, models.ErrNotFound("property", id.String())
	}

	return r.GetByIDAdmin(id)
}

// Delete removes a listing and all of its images. The images go first so
// the property row never outlives them. Unknown ids surface NotFoundError.
func (r *PropertyRepository) Delete(id uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM property_images WHERE property_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete property images: %w", err)
	}

	result, err := r.db.Exec(`DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound("property", id.String())
	}

	return nil
}

// SaveImages stores an ordered image list for a listing. The first image
// is the primary one by convention.
func (r *PropertyRepository) SaveImages(propertyID uuid.UUID, imageURLs []string) ([]models.PropertyImage, error) {
	saved := make([]models.PropertyImage, 0, len(imageURLs))

	query := `
		INSERT INTO property_images (
			id, property_id, image_url, image_order, is_primary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, url := range imageURLs {
		img := models.PropertyImage{
			ID:         uuid.New(),
			PropertyID: propertyID,
			ImageURL:   url,
			ImageOrder: i,
			IsPrimary:  i == 0,
			CreatedAt:  time.Now(),
		}

		_, err := r.db.Exec(query, img.ID, img.PropertyID, img.ImageURL,
			img.ImageOrder, img.IsPrimary, img.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to save property image: %w", err)
		}

		saved = append(saved, img)
	}

	return saved, nil
}

// GetImages retrieves the ordered image list for a single listing
func (r *PropertyRepository) GetImages(propertyID uuid.UUID) ([]models.PropertyImage, error) {
	images := []models.PropertyImage{}

	query := `
		SELECT id, property_id, image_url, image_order, is_primary, created_at
		FROM property_images
		WHERE property_id = $1
		ORDER BY image_order ASC
	`

	err := r.db.Select(&images, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get property images: %w", err)
	}

	return images, nil
}

// GetStats summarizes the listing inventory for the admin dashboard
func (r *PropertyRepository) GetStats() (*models.PropertyStats, error) {
	var stats models.PropertyStats

	query := `
		SELECT
			COUNT(*) as total_properties,
			COUNT(*) FILTER (WHERE status = 'pending') as pending_properties,
			COUNT(*) FILTER (WHERE status = 'approved') as approved_properties,
			COUNT(*) FILTER (WHERE status = 'sold') as sold_properties,
			AVG(asking_price) as average_price,
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days') as recent_properties
		FROM properties
	`

	err := r.db.Get(&stats, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get property stats: %w", err)
	}

	return &stats, nil
}
