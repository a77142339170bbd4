package models

import (
	"time"

	"github.com/google/uuid"
)

// Email notification categories
const (
	EmailTypeBuyerRequest       = "buyer_request"
	EmailTypePropertySubmission = "property_submission"
	EmailTypeAdminNotification  = "admin_notification"
	EmailTypeMarketing          = "marketing"
)

// Email dispatch outcomes
const (
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusPending = "pending"
)

// EmailLog records one outbound notification attempt. Dispatch failures are
// recorded here and reported as warnings; they never fail the write that
// triggered them.
type EmailLog struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	RecipientEmail string     `json:"recipient_email" db:"recipient_email"`
	Subject        string     `json:"subject" db:"subject"`
	EmailType      string     `json:"email_type" db:"email_type"`
	Status         string     `json:"status" db:"status"`
	SentAt         time.Time  `json:"sent_at" db:"sent_at"`
	RelatedID      *uuid.UUID `json:"related_id,omitempty" db:"related_id"`
	Content        *string    `json:"content,omitempty" db:"content"`
}
