package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/pkg/notify"
)

// MatchService runs buyer requests against the approved inventory. It is
// read-only: reviewing or sending match results never changes the
// request's status.
type MatchService struct {
	requests   BuyerRequestStore
	properties PropertyStore
	notifier   notify.Notifier
	emailLogs  EmailLogStore
	logger     *logrus.Logger
}

// NewMatchService creates a new match service
func NewMatchService(requests BuyerRequestStore, properties PropertyStore,
	notifier notify.Notifier, emailLogs EmailLogStore, logger *logrus.Logger) *MatchService {
	return &MatchService{
		requests:   requests,
		properties: properties,
		notifier:   notifier,
		emailLogs:  emailLogs,
		logger:     logger,
	}
}

// MatchForRequest returns the approved properties satisfying every
// criterion of the request, newest first. An unknown request id is
// NotFoundError; a request nothing matches yields an empty list.
func (s *MatchService) MatchForRequest(requestID uuid.UUID) ([]*models.Property, error) {
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, models.ErrNotFound("buyer request", requestID.String())
	}

	inventory, err := s.properties.GetApproved()
	if err != nil {
		return nil, err
	}

	return MatchProperties(req, inventory), nil
}

// NotifyMatches emails the current match results to the buyer. This is an
// explicit admin action taken after reviewing matches, never an automatic
// side effect of matching, and it does not touch the request's status.
func (s *MatchService) NotifyMatches(requestID uuid.UUID) ([]*models.Property, error) {
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, models.ErrNotFound("buyer request", requestID.String())
	}
	if req.ContactEmail == nil || *req.ContactEmail == "" {
		return nil, models.ErrInvalidInput("buyer request has no contact email")
	}

	inventory, err := s.properties.GetApproved()
	if err != nil {
		return nil, err
	}
	matches := MatchProperties(req, inventory)

	subject := fmt.Sprintf("Property Matches Found - %d Properties Match Your Criteria", len(matches))
	sendErr := s.notifier.Send(notify.Message{
		To:      *req.ContactEmail,
		Subject: subject,
		Kind:    models.EmailTypeAdminNotification,
		Payload: map[string]interface{}{
			"request": req,
			"matches": matches,
		},
	})

	status := models.EmailStatusSent
	if sendErr != nil {
		status = models.EmailStatusFailed
	}
	if s.emailLogs != nil {
		if _, err := s.emailLogs.Record(*req.ContactEmail, subject, models.EmailTypeAdminNotification, status, &req.ID); err != nil {
			s.logger.WithError(err).Warn("Failed to record email log")
		}
	}

	if sendErr != nil {
		return nil, fmt.Errorf("failed to send match results: %w", sendErr)
	}

	return matches, nil
}
