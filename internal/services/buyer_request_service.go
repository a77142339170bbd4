package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/pkg/notify"
)

// BuyerRequestStore is the persistence surface BuyerRequestService and the
// matcher depend on
type BuyerRequestStore interface {
	Create(req *models.BuyerRequest) (*models.BuyerRequest, error)
	GetAll() ([]*models.BuyerRequest, error)
	GetByID(id uuid.UUID) (*models.BuyerRequest, error)
	UpdateStatus(id uuid.UUID, newStatus string) (*models.BuyerRequest, error)
	GetStats() (*models.BuyerRequestStats, error)
}

// BuyerRequestService coordinates buyer submissions and their admin
// lifecycle
type BuyerRequestService struct {
	store      BuyerRequestStore
	notifier   notify.Notifier
	emailLogs  EmailLogStore
	adminEmail string
	logger     *logrus.Logger
}

// NewBuyerRequestService creates a new buyer request service
func NewBuyerRequestService(store BuyerRequestStore, notifier notify.Notifier,
	emailLogs EmailLogStore, adminEmail string, logger *logrus.Logger) *BuyerRequestService {
	return &BuyerRequestService{
		store:      store,
		notifier:   notifier,
		emailLogs:  emailLogs,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Submit stores a buyer request and alerts the admin inbox. The alert is
// best-effort and never fails the create.
func (s *BuyerRequestService) Submit(req *models.BuyerRequest) (*models.BuyerRequest, error) {
	created, err := s.store.Create(req)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("New Buyer Request - %s in %s",
		created.PropertyType, strings.Join(created.PreferredDistricts, ", "))

	status := models.EmailStatusSent
	if err := s.notifier.Send(notify.Message{
		To:      s.adminEmail,
		Subject: subject,
		Kind:    models.EmailTypeBuyerRequest,
		Payload: created,
	}); err != nil {
		status = models.EmailStatusFailed
		s.logger.WithError(err).WithField("request_id", created.ID).Warn("Buyer request alert failed")
	}

	if s.emailLogs != nil {
		if _, err := s.emailLogs.Record(s.adminEmail, subject, models.EmailTypeBuyerRequest, status, &created.ID); err != nil {
			s.logger.WithError(err).Warn("Failed to record email log")
		}
	}

	return created, nil
}

// List returns every buyer request, newest first
func (s *BuyerRequestService) List() ([]*models.BuyerRequest, error) {
	return s.store.GetAll()
}

// GetByID returns a buyer request, or nil when the id is unknown
func (s *BuyerRequestService) GetByID(id uuid.UUID) (*models.BuyerRequest, error) {
	return s.store.GetByID(id)
}

// UpdateStatus sets a request's status; requests move freely between the
// four statuses
func (s *BuyerRequestService) UpdateStatus(id uuid.UUID, newStatus string) (*models.BuyerRequest, error) {
	return s.store.UpdateStatus(id, newStatus)
}

// Stats returns the demand summary for the admin dashboard
func (s *BuyerRequestService) Stats() (*models.BuyerRequestStats, error) {
	return s.store.GetStats()
}
