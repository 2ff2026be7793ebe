package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuoteProposalEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber, proposalURL string) error {
	subject := fmt.Sprintf(subjectQuoteProposalFmt, quoteNumber, companyName)
	content, err := renderEmailTemplate("quote_proposal.html", quoteProposalEmailData{
		baseEmailData: baseEmailData{
			Title:    "Uw offerte is klaar",
			Heading:  "Uw offerte is klaar",
			CTALabel: "Bekijk offerte",
			CTAURL:   proposalURL,
		},
		CustomerName: customerName,
		CompanyName:  companyName,
		QuoteNumber:  quoteNumber,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendQuoteAcceptedEmail(ctx context.Context, toEmail, quoteNumber, customerName string, totalInclVat float64) error {
	subject := fmt.Sprintf(subjectQuoteAcceptedFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_accepted.html", quoteAcceptedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Offerte geaccepteerd",
			Heading: "Offerte geaccepteerd",
		},
		QuoteNumber:    quoteNumber,
		CustomerName:   customerName,
		TotalFormatted: formatCurrencyEUR(totalInclVat),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendQuoteThankYouEmail(ctx context.Context, toEmail, customerName, companyName, quoteNumber string, attachments ...Attachment) error {
	subject := fmt.Sprintf(subjectQuoteThankYouFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_thank_you.html", quoteThankYouEmailData{
		baseEmailData: baseEmailData{
			Title:   "Bedankt voor uw akkoord",
			Heading: "Bedankt voor uw akkoord",
		},
		CustomerName:   customerName,
		CompanyName:    companyName,
		QuoteNumber:    quoteNumber,
		HasAttachments: len(attachments) > 0,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content, attachments...)
}
