package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"solaris_crm_backend/platform/config"
)

// GmailSender implements the Sender interface over Gmail SMTP with XOAUTH2.
// Access tokens come from the shared token source, refreshed lazily.
type GmailSender struct {
	host           string
	port           int
	fromName       string
	fromEmail      string
	salesTeamEmail string
	tokens         *gmailTokenSource
}

// NewGmailSender creates a sender from the mailer configuration.
func NewGmailSender(cfg config.MailerConfig) *GmailSender {
	return &GmailSender{
		host:           cfg.GetSMTPHost(),
		port:           cfg.GetSMTPPort(),
		fromName:       cfg.GetEmailFromName(),
		fromEmail:      cfg.GetEmailFromAddress(),
		salesTeamEmail: cfg.GetSalesTeamEmail(),
		tokens:         newGmailTokenSource(cfg.GetGmailClientID(), cfg.GetGmailClientSecret(), cfg.GetGmailRefreshToken()),
	}
}

func (s *GmailSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	accessToken, err := s.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthXOAUTH2),
		gomail.WithUsername(s.fromEmail),
		gomail.WithPassword(accessToken),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *GmailSender) SendLeadWelcome(ctx context.Context, toEmail, firstName, propertyAddress string) error {
	content, err := renderEmailTemplate("lead_welcome.html", leadWelcomeEmailData{
		baseEmailData: baseEmailData{
			Title:   "We received your quote request",
			Heading: "We're on it!",
		},
		FirstName:       firstName,
		PropertyAddress: propertyAddress,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectLeadWelcome, content)
}

func (s *GmailSender) SendSalesAlert(ctx context.Context, leadID uuid.UUID, fullName, email, phone, propertyAddress string) error {
	content, err := renderEmailTemplate("sales_alert.html", salesAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "New lead",
			Heading: "New lead from the quote form",
		},
		LeadID:          leadID.String(),
		FullName:        fullName,
		Email:           email,
		Phone:           phone,
		PropertyAddress: propertyAddress,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, s.salesTeamEmail, fmt.Sprintf(subjectSalesAlertFmt, fullName), content)
}

var _ Sender = (*GmailSender)(nil)
