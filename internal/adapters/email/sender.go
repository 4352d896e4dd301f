// Package email sends transactional mail, used for coach notifications.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "Heavy Gym <noreply@heavygym.se>"); empty uses the sender default
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address, usually the member who submitted
	Text    string // Plain-text alternative; empty sends HTML only
	// Tags label the message at the provider, e.g. category=onboarding.
	// Keys and values are limited to ASCII letters, digits, '_' and '-'.
	Tags map[string]string
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
