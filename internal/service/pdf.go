package service

import (
	"bytes"
	"fmt"

	"github.com/akinmix/sibelgpt-backend/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// RenderListingPDF produces a one-page summary PDF for a listing row, the
// document behind the formatter's download buttons.
func RenderListingPDF(row model.ListingRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// cp1254 covers the Turkish characters of the scraped fields.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("SibelGPT Gayrimenkul"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, tr(row.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	lines := []struct {
		label string
		value string
	}{
		{"İlan No", row.ListingID},
		{"Konum", row.Location},
		{"Fiyat", FormatPrice(priceText(row))},
		{"Özellikler", FeaturesLine(row)},
	}
	for _, line := range lines {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(35, 8, tr(line.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, tr(line.value), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Detaylı bilgi ve randevu için: 0533 363 13 13"), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
