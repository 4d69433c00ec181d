// Package email delivers transactional mail for the lead intake flow via
// Gmail SMTP with OAuth2.
package email

import (
	"context"

	"github.com/google/uuid"
)

// Sender delivers the intake notification emails. Implementations must be
// safe for concurrent use; the queue worker calls them from multiple
// goroutines.
type Sender interface {
	// SendLeadWelcome confirms receipt of the quote request to the lead.
	SendLeadWelcome(ctx context.Context, toEmail, firstName, propertyAddress string) error
	// SendSalesAlert notifies the sales team about a fresh lead.
	SendSalesAlert(ctx context.Context, leadID uuid.UUID, fullName, email, phone, propertyAddress string) error
}

// NoopSender is used when email delivery is disabled (local development,
// tests). It reports success without sending anything.
type NoopSender struct{}

func (NoopSender) SendLeadWelcome(ctx context.Context, toEmail, firstName, propertyAddress string) error {
	return nil
}

func (NoopSender) SendSalesAlert(ctx context.Context, leadID uuid.UUID, fullName, email, phone, propertyAddress string) error {
	return nil
}

var _ Sender = NoopSender{}
