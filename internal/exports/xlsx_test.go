package exports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Jan de Vries", "Jan de Vries"},
		{"formula equals", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"formula plus", "+31612345678", "'+31612345678"},
		{"formula minus", "-cmd", "'-cmd"},
		{"formula at", "@import", "'@import"},
		{"tab prefix", "\tvalue", "'\tvalue"},
		{"pipe prefix", "|shell", "'|shell"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestArchiveFileName(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	got := ArchiveFileName("OFF-2026-0042", at)
	want := "OFF-2026-0042-20260314-093000.xlsx"
	if got != want {
		t.Errorf("ArchiveFileName = %q, want %q", got, want)
	}

	got = ArchiveFileName("OFF/2026 0001", at)
	if strings.ContainsAny(got, "/ ") {
		t.Errorf("ArchiveFileName did not sanitize separators: %q", got)
	}
}

func TestBuildQuoteWorkbook(t *testing.T) {
	validUntil := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	quote := &QuoteExport{
		ID:                     uuid.New(),
		OrganizationID:         uuid.New(),
		QuoteNumber:            "OFF-2026-0007",
		QuoteType:              "aanleg",
		Status:                 "geaccepteerd",
		CustomerName:           "=Fam. Bakker",
		CustomerEmail:          "bakker@example.com",
		ValidUntil:             &validUntil,
		CreatedAt:              time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Subtotal:               1000,
		Margin:                 200,
		EffectiveMarginPercent: 20,
		ExVat:                  1200,
		Vat:                    252,
		InclVat:                1452,
		Lines: []QuoteExportLine{
			{Scope: "paving", Description: "Bestrating leggen", Unit: "m2", Quantity: 40, UnitPrice: 17.5, Total: 700, Kind: "labor"},
			{Scope: "paving", Description: "Straatzand", Unit: "m3", Quantity: 2, UnitPrice: 45, Total: 90, Kind: "material"},
		},
	}

	content, err := BuildQuoteWorkbook(quote)
	if err != nil {
		t.Fatalf("BuildQuoteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Offerte" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	title, err := f.GetCellValue("Offerte", "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Offerte OFF-2026-0007" {
		t.Errorf("title = %q", title)
	}

	// Customer name starts with = and must be escaped in the header block.
	customer, err := f.GetCellValue("Offerte", "B3")
	if err != nil {
		t.Fatalf("read customer: %v", err)
	}
	if !strings.HasPrefix(customer, "'=") {
		t.Errorf("customer cell not sanitized: %q", customer)
	}

	rows, err := f.GetRows("Offerte")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	var foundLine, foundTotal bool
	for _, row := range rows {
		joined := strings.Join(row, "|")
		if strings.Contains(joined, "Bestrating leggen") && strings.Contains(joined, "Arbeid") {
			foundLine = true
		}
		if strings.Contains(joined, "Totaal incl. btw") {
			foundTotal = true
		}
	}
	if !foundLine {
		t.Error("labor line missing from workbook")
	}
	if !foundTotal {
		t.Error("totals block missing from workbook")
	}
}
