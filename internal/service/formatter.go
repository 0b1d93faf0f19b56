package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akinmix/sibelgpt-backend/internal/model"
)

// manifestPrefix introduces the authoritative ID manifest. The real-estate
// system prompt limits the LLM to citing IDs listed after this marker.
const manifestPrefix = "VERİTABANINDAKİ GERÇEK İLAN NUMARALARI: "

const contactHeader = "<p>Size uygun ilanları buldum. Detaylı bilgi için <strong>0533 363 13 13</strong> numaralı telefondan bize ulaşabilirsiniz.</p>"

const noMatchMessage = "Üzgünüm, aradığınız kriterlere uygun ilan bulamadım. Lütfen farklı kriterlerle tekrar dener misiniz?"

// FormatListings renders ranked listing rows as an HTML fragment: a contact
// header, an ordered list capped at maxShown items and the manifest footer.
// Rows are deduplicated by listing id in arrival order.
func FormatListings(rows []model.ListingRow, maxShown int) string {
	if len(rows) == 0 {
		return noMatchMessage
	}

	var b strings.Builder
	b.WriteString(contactHeader)
	b.WriteString("\n<ol>\n")

	seen := make(map[string]bool, len(rows))
	manifest := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(manifest) >= maxShown {
			break
		}
		if row.ListingID == "" || seen[row.ListingID] {
			continue
		}
		seen[row.ListingID] = true
		manifest = append(manifest, row.ListingID)

		b.WriteString("<li>")
		b.WriteString(fmt.Sprintf("<strong>%s</strong><br>", row.Title))
		b.WriteString(fmt.Sprintf("İlan No: %s<br>", row.ListingID))
		b.WriteString(fmt.Sprintf("Konum: %s<br>", row.Location))
		b.WriteString(fmt.Sprintf("Fiyat: %s<br>", FormatPrice(priceText(row))))
		b.WriteString(fmt.Sprintf("Özellikler: %s<br>", FeaturesLine(row)))
		b.WriteString(fmt.Sprintf(
			`<a href="/generate-property-pdf/%s" target="_blank"><button>📄 PDF İndir</button></a>`,
			row.ListingID))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>\n")

	if len(manifest) == 0 {
		return noMatchMessage
	}

	b.WriteString("<p>")
	b.WriteString(manifestPrefix)
	b.WriteString(strings.Join(manifest, ", "))
	b.WriteString("</p>")
	return b.String()
}

// ManifestIDs extracts the ids listed on the manifest line of a formatted
// fragment. Used by tests and by callers that need the rendered id set.
func ManifestIDs(html string) []string {
	idx := strings.Index(html, manifestPrefix)
	if idx < 0 {
		return nil
	}
	rest := html[idx+len(manifestPrefix):]
	if end := strings.Index(rest, "</p>"); end >= 0 {
		rest = rest[:end]
	}
	parts := strings.Split(rest, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// FormatPrice renders a price in Turkish locale: thousands separated by ".",
// decimals by ",", suffixed with "₺". Unparseable input is returned verbatim.
func FormatPrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Belirtilmemiş"
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// The store sometimes carries prices already in Turkish notation
		// ("1.234.567,50"); strip grouping dots and swap the decimal comma.
		normalized := strings.ReplaceAll(raw, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
		value, err = strconv.ParseFloat(normalized, 64)
		if err != nil {
			return raw
		}
	}

	whole := int64(value)
	frac := value - float64(whole)

	grouped := groupThousands(whole)
	if frac > 0.004 {
		return fmt.Sprintf("%s,%02d ₺", grouped, int(frac*100+0.5))
	}
	return grouped + " ₺"
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// FloorLabel rewrites an integer floor value into its Turkish display form.
func FloorLabel(n int64) string {
	switch {
	case n == 0:
		return "Giriş Kat"
	case n < 0:
		return fmt.Sprintf("Bodrum Kat (%d)", n)
	default:
		return fmt.Sprintf("%d. Kat", n)
	}
}

// FeaturesLine composes the per-listing features line. The scraped features
// string wins when present; otherwise the line is rebuilt from room count,
// area and floor. Integer-only tokens are floor numbers and get rewritten.
func FeaturesLine(row model.ListingRow) string {
	if row.Features.Valid && strings.TrimSpace(row.Features.String) != "" {
		tokens := strings.Split(row.Features.String, "|")
		parts := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
				tok = FloorLabel(n)
			}
			parts = append(parts, tok)
		}
		if len(parts) > 0 {
			return strings.Join(parts, " | ")
		}
	}

	parts := make([]string, 0, 3)
	if row.RoomCount != "" {
		parts = append(parts, row.RoomCount)
	}
	if row.AreaM2 != "" {
		area := row.AreaM2
		if !strings.Contains(area, "m²") {
			area += " m²"
		}
		parts = append(parts, area)
	}
	if row.Floor.Valid {
		parts = append(parts, FloorLabel(row.Floor.Int64))
	}
	if len(parts) == 0 {
		return "Belirtilmemiş"
	}
	return strings.Join(parts, " | ")
}

func priceText(row model.ListingRow) string {
	if row.Price.Valid {
		return row.Price.String
	}
	return ""
}
