package email

import (
	"strings"
	"testing"
)

func TestRenderQuoteProposalTemplate(t *testing.T) {
	content, err := renderEmailTemplate("quote_proposal.html", quoteProposalEmailData{
		baseEmailData: baseEmailData{
			Title:    "Uw offerte is klaar",
			Heading:  "Uw offerte is klaar",
			CTALabel: "Bekijk offerte",
			CTAURL:   "https://app.example.nl/offerte/abc123",
		},
		CustomerName: "J. de Vries",
		CompanyName:  "Groenwerk Hoveniers",
		QuoteNumber:  "OFF-2026-0042",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"J. de Vries",
		"OFF-2026-0042",
		"Groenwerk Hoveniers",
		`href="https://app.example.nl/offerte/abc123"`,
		"Bekijk offerte",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered proposal mail missing %q", want)
		}
	}
}

func TestRenderQuoteAcceptedTemplate(t *testing.T) {
	content, err := renderEmailTemplate("quote_accepted.html", quoteAcceptedEmailData{
		baseEmailData:  baseEmailData{Title: "Offerte geaccepteerd", Heading: "Offerte geaccepteerd"},
		QuoteNumber:    "OFF-2026-0007",
		CustomerName:   "P. Jansen",
		TotalFormatted: formatCurrencyEUR(1210.50),
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(content, "€1210,50") {
		t.Errorf("expected formatted total in mail, got:\n%s", content)
	}
	// No CTA configured, so no button should render.
	if strings.Contains(content, "<a href") {
		t.Error("accepted mail should not contain a CTA button")
	}
}

func TestRenderQuoteThankYouTemplateAttachmentHint(t *testing.T) {
	base := quoteThankYouEmailData{
		baseEmailData: baseEmailData{Title: "Bedankt", Heading: "Bedankt"},
		CustomerName:  "K. Bakker",
		CompanyName:   "Groenwerk",
		QuoteNumber:   "OFF-2026-0010",
	}

	withAttachment := base
	withAttachment.HasAttachments = true

	content, err := renderEmailTemplate("quote_thank_you.html", withAttachment)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(content, "bijlage") {
		t.Error("expected attachment hint when attachments are present")
	}

	content, err = renderEmailTemplate("quote_thank_you.html", base)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(content, "bijlage") {
		t.Error("unexpected attachment hint without attachments")
	}
}

func TestFormatCurrencyEUR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "€0,00"},
		{95, "€95,00"},
		{1234.5, "€1234,50"},
	}
	for _, tt := range tests {
		if got := formatCurrencyEUR(tt.amount); got != tt.want {
			t.Errorf("formatCurrencyEUR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
