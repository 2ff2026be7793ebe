package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

type quoteProposalEmailData struct {
	baseEmailData
	CustomerName string
	CompanyName  string
	QuoteNumber  string
}

type quoteAcceptedEmailData struct {
	baseEmailData
	QuoteNumber    string
	CustomerName   string
	TotalFormatted string
}

type quoteThankYouEmailData struct {
	baseEmailData
	CustomerName   string
	CompanyName    string
	QuoteNumber    string
	HasAttachments bool
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// formatCurrencyEUR renders an amount with the Dutch decimal comma.
func formatCurrencyEUR(amount float64) string {
	return "€" + strings.ReplaceAll(fmt.Sprintf("%.2f", amount), ".", ",")
}
