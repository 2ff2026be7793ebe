package exports

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const quoteSheetName = "Offerte"

var lineKindLabels = map[string]string{
	"labor":    "Arbeid",
	"material": "Materiaal",
	"machine":  "Machine",
}

// BuildQuoteWorkbook renders a quote into a styled XLSX workbook.
func BuildQuoteWorkbook(q *QuoteExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quoteSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setQuoteColumnWidths(f); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "2F5233"},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: "555555"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2F5233"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4,
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"EDF3EE"}, Pattern: 1},
		Border: thinBorders(),
		NumFmt: 4,
	})
	if err != nil {
		return nil, err
	}

	// Title and header block.
	_ = f.SetCellValue(quoteSheetName, "A1", fmt.Sprintf("Offerte %s", q.QuoteNumber))
	_ = f.MergeCell(quoteSheetName, "A1", "F1")
	_ = f.SetCellStyle(quoteSheetName, "A1", "F1", titleStyle)
	_ = f.SetRowHeight(quoteSheetName, 1, 24)

	headerFields := [][2]string{
		{"Klant", sanitizeExcelCell(q.CustomerName)},
		{"E-mail", sanitizeExcelCell(q.CustomerEmail)},
		{"Soort", q.QuoteType},
		{"Status", q.Status},
		{"Aangemaakt", q.CreatedAt.Format("02-01-2006")},
	}
	if q.CustomerAddress != nil && *q.CustomerAddress != "" {
		headerFields = append(headerFields, [2]string{"Adres", sanitizeExcelCell(*q.CustomerAddress)})
	}
	if q.ValidUntil != nil {
		headerFields = append(headerFields, [2]string{"Geldig tot", q.ValidUntil.Format("02-01-2006")})
	}

	row := 3
	for _, field := range headerFields {
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("A%d", row), field[0])
		_ = f.SetCellStyle(quoteSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("B%d", row), field[1])
		row++
	}
	row++

	// Line table.
	headers := []string{"Scope", "Omschrijving", "Soort", "Aantal", "Eenheid", "Prijs p/e", "Totaal"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(quoteSheetName, cell, header)
		_ = f.SetCellStyle(quoteSheetName, cell, cell, headerStyle)
	}
	row++

	for _, line := range q.Lines {
		kind := line.Kind
		if label, ok := lineKindLabels[kind]; ok {
			kind = label
		}
		values := []interface{}{
			line.Scope,
			sanitizeExcelCell(line.Description),
			kind,
			line.Quantity,
			line.Unit,
			line.UnitPrice,
			line.Total,
		}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(quoteSheetName, cell, value)
			style := cellStyle
			if i >= 5 {
				style = moneyStyle
			}
			_ = f.SetCellStyle(quoteSheetName, cell, cell, style)
		}
		row++
	}
	row++

	totals := [][2]interface{}{
		{"Subtotaal", q.Subtotal},
		{fmt.Sprintf("Marge (%.1f%%)", q.EffectiveMarginPercent), q.Margin},
		{"Totaal excl. btw", q.ExVat},
		{"Btw", q.Vat},
		{"Totaal incl. btw", q.InclVat},
	}
	for _, total := range totals {
		labelCell := fmt.Sprintf("F%d", row)
		valueCell := fmt.Sprintf("G%d", row)
		_ = f.SetCellValue(quoteSheetName, labelCell, total[0])
		_ = f.SetCellValue(quoteSheetName, valueCell, total[1])
		_ = f.SetCellStyle(quoteSheetName, labelCell, valueCell, totalStyle)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveFileName builds the object name for an archived quote workbook.
func ArchiveFileName(quoteNumber string, at time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, quoteNumber)
	return fmt.Sprintf("%s-%s.xlsx", safe, at.Format("20060102-150405"))
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous characters.
func sanitizeExcelCell(value string) string {
	if value == "" {
		return value
	}
	first := value[0]
	if first == '=' || first == '+' || first == '-' || first == '@' || first == '\t' || first == '\r' {
		return "'" + value
	}
	if strings.HasPrefix(value, "|") {
		return "'" + value
	}
	return value
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
	}
}

func setQuoteColumnWidths(f *excelize.File) error {
	widths := map[string]float64{
		"A": 16, "B": 44, "C": 12, "D": 10, "E": 10, "F": 14, "G": 14,
	}
	for col, width := range widths {
		if err := f.SetColWidth(quoteSheetName, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
