// Package email sends the customer-facing and internal quote notifications
// over the tenant's own SMTP server. Templates are embedded; callers only
// supply the dynamic fields.
package email

import (
	"context"

	"offerte-engine-backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes
	FileName string // e.g. "offerte-OFF-2026-0042.xlsx"
	MIMEType string // e.g. "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Sender delivers the quote lifecycle mails.
type Sender interface {
	// SendQuoteProposalEmail mails the customer the magic link to their
	// proposal page.
	SendQuoteProposalEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber, proposalURL string) error
	// SendQuoteAcceptedEmail notifies the office that a customer accepted.
	SendQuoteAcceptedEmail(ctx context.Context, toEmail, quoteNumber, customerName string, totalInclVat float64) error
	// SendQuoteThankYouEmail thanks the customer for their acceptance,
	// optionally attaching the quote spreadsheet.
	SendQuoteThankYouEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber string, attachments ...Attachment) error
}

// NoopSender is used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendQuoteProposalEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber, proposalURL string) error {
	return nil
}

func (NoopSender) SendQuoteAcceptedEmail(ctx context.Context, toEmail, quoteNumber, customerName string, totalInclVat float64) error {
	return nil
}

func (NoopSender) SendQuoteThankYouEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber string, attachments ...Attachment) error {
	return nil
}

// NewSender returns the configured Sender: SMTP when email is enabled,
// otherwise a no-op.
func NewSender(cfg config.SMTPConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
