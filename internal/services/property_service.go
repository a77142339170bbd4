package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/pkg/notify"
)

// PropertyStore is the persistence surface PropertyService depends on
type PropertyStore interface {
	Create(p *models.Property) (*models.Property, error)
	GetApproved() ([]*models.Property, error)
	GetAll() ([]*models.Property, error)
	GetByID(id uuid.UUID) (*models.Property, error)
	GetByIDAdmin(id uuid.UUID) (*models.Property, error)
	UpdateStatus(id uuid.UUID, newStatus string, approvedBy *uuid.UUID) (*models.Property, error)
	Update(id uuid.UUID, updates database.PropertyUpdate) (*models.Property, error)
	Delete(id uuid.UUID) error
	SaveImages(propertyID uuid.UUID, imageURLs []string) ([]models.PropertyImage, error)
	GetStats() (*models.PropertyStats, error)
}

// EmailLogStore records notification dispatch attempts
type EmailLogStore interface {
	Record(recipient, subject, emailType, status string, relatedID *uuid.UUID) (*models.EmailLog, error)
}

// ListingSnapshotCache is an optional cache of the approved inventory. A
// nil cache means every listing query goes to the store.
type ListingSnapshotCache interface {
	Get(ctx context.Context) ([]*models.Property, bool)
	Set(ctx context.Context, properties []*models.Property) error
	Invalidate(ctx context.Context) error
}

// PropertyService coordinates listing submissions, public browsing and the
// admin lifecycle
type PropertyService struct {
	store      PropertyStore
	cache      ListingSnapshotCache
	notifier   notify.Notifier
	emailLogs  EmailLogStore
	adminEmail string
	logger     *logrus.Logger
}

// NewPropertyService creates a new property service. cache may be nil.
func NewPropertyService(store PropertyStore, cache ListingSnapshotCache, notifier notify.Notifier,
	emailLogs EmailLogStore, adminEmail string, logger *logrus.Logger) *PropertyService {
	return &PropertyService{
		store:      store,
		cache:      cache,
		notifier:   notifier,
		emailLogs:  emailLogs,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Submit stores a seller submission with its images and alerts the admin
// inbox. The alert is best-effort: the listing is already persisted and a
// dispatch failure only produces a warning.
func (s *PropertyService) Submit(ctx context.Context, p *models.Property, imageURLs []string) (*models.Property, error) {
	created, err := s.store.Create(p)
	if err != nil {
		return nil, err
	}

	if len(imageURLs) > 0 {
		images, err := s.store.SaveImages(created.ID, imageURLs)
		if err != nil {
			return nil, err
		}
		created.Images = images
	}

	subject := fmt.Sprintf("New Property Submission - %s", created.Title)
	s.dispatch(notify.Message{
		To:      s.adminEmail,
		Subject: subject,
		Kind:    models.EmailTypePropertySubmission,
		Payload: created,
	}, created.ID)

	return created, nil
}

// ListApproved returns the approved inventory filtered by the given filter,
// newest first. On a cache hit the snapshot is filtered in-process; on a
// miss the store is queried once and the snapshot refreshed. Both paths
// run the same filter engine, so results are identical.
func (s *PropertyService) ListApproved(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	if s.cache != nil {
		if snapshot, ok := s.cache.Get(ctx); ok {
			return ApplyFilters(snapshot, filter), nil
		}
	}

	properties, err := s.store.GetApproved()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, properties); err != nil {
			s.logger.WithError(err).Warn("Failed to cache listing snapshot")
		}
	}

	return ApplyFilters(properties, filter), nil
}

// ListAll returns every listing for the admin dashboard
func (s *PropertyService) ListAll() ([]*models.Property, error) {
	return s.store.GetAll()
}

// GetByID returns an approved listing, or nil when the id is unknown or
// the listing is not public
func (s *PropertyService) GetByID(id uuid.UUID) (*models.Property, error) {
	return s.store.GetByID(id)
}

// UpdateStatus moves a listing through its lifecycle and drops the cached
// snapshot
func (s *PropertyService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string, approvedBy *uuid.UUID) (*models.Property, error) {
	updated, err := s.store.UpdateStatus(id, newStatus, approvedBy)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// UpdateDetails applies an admin edit and drops the cached snapshot
func (s *PropertyService) UpdateDetails(ctx context.Context, id uuid.UUID, updates database.PropertyUpdate) (*models.Property, error) {
	updated, err := s.store.Update(id, updates)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a listing with its images and drops the cached snapshot
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Stats returns the inventory summary for the admin dashboard
func (s *PropertyService) Stats() (*models.PropertyStats, error) {
	return s.store.GetStats()
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate listing cache")
	}
}

// dispatch sends a notification and records the attempt. Failures are
// logged and recorded but never returned: the triggering write already
// succeeded.
func (s *PropertyService) dispatch(msg notify.Message, relatedID uuid.UUID) {
	status := models.EmailStatusSent
	if err := s.notifier.Send(msg); err != nil {
		status = models.EmailStatusFailed
		s.logger.WithError(err).WithFields(logrus.Fields{
			"kind":    msg.Kind,
			"subject": msg.Subject,
		}).Warn("Notification dispatch failed")
	}

	if s.emailLogs != nil {
		if _, err := s.emailLogs.Record(msg.To, msg.Subject, msg.Kind, status, &relatedID); err != nil {
			s.logger.WithError(err).Warn("Failed to record email log")
		}
	}
}
