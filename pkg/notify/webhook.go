package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookNotifier delivers notifications by POSTing them as JSON to an
// email relay endpoint
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// WebhookConfig holds configuration for the webhook notifier
type WebhookConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// NewWebhookNotifier creates a new webhook notifier client
func NewWebhookNotifier(config WebhookConfig) *WebhookNotifier {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		webhookURL: config.WebhookURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts the message to the relay endpoint
func (n *WebhookNotifier) Send(msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification relay returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// GetName returns the notifier name
func (n *WebhookNotifier) GetName() string {
	return "webhook"
}

// DevNotifier is a no-op notifier for development environments
type DevNotifier struct{}

// NewDevNotifier creates a notifier that accepts every message without
// sending anything
func NewDevNotifier() *DevNotifier {
	return &DevNotifier{}
}

// Send accepts the message and does nothing
func (n *DevNotifier) Send(msg Message) error {
	return nil
}

// GetName returns the notifier name
func (n *DevNotifier) GetName() string {
	return "dev"
}
