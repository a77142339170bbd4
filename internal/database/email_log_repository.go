package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

// EmailLogRepository records outbound notification attempts
type EmailLogRepository struct {
	db DB
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db DB) *EmailLogRepository {
	return &EmailLogRepository{
		db: db,
	}
}

// Record stores one dispatch attempt. relatedID links the log entry to the
// record that triggered it.
func (r *EmailLogRepository) Record(recipient, subject, emailType, status string, relatedID *uuid.UUID) (*models.EmailLog, error) {
	entry := &models.EmailLog{
		ID:             uuid.New(),
		RecipientEmail: recipient,
		Subject:        subject,
		EmailType:      emailType,
		Status:         status,
		SentAt:         time.Now(),
		RelatedID:      relatedID,
	}

	query := `
		INSERT INTO email_logs (
			id, recipient_email, subject, email_type, status, sent_at, related_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		query,
		entry.ID,
		entry.RecipientEmail,
		entry.Subject,
		entry.EmailType,
		entry.Status,
		entry.SentAt,
		entry.RelatedID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record email log: %w", err)
	}

	return entry, nil
}

// ListRecent retrieves the latest dispatch attempts for the admin view
func (r *EmailLogRepository) ListRecent(limit int) ([]*models.EmailLog, error) {
	var logs []*models.EmailLog

	query := `
		SELECT id, recipient_email, subject, email_type, status, sent_at,
		       related_id, content
		FROM email_logs
		ORDER BY sent_at DESC
		LIMIT $1
	`

	err := r.db.Select(&logs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}

	return logs, nil
}
