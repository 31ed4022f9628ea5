package ontarioparks

import (
	"regexp"
	"strings"

	"campscan/models"
)

// Rendered-layout patterns. Platform-specific; adjust alongside
// endpointTokens when the upstream page changes.
var (
	rowPattern = regexp.MustCompile(
		`(?i)(Site\s*\w[^\n]{0,40}?)\s+(Available|Sold\s*out|Not\s+available|Unavailable|Reserved)`)
	textPriceRe = regexp.MustCompile(`\$\s*[\d,]+(?:\.\d{1,2})?`)
	textDateRe  = regexp.MustCompile(
		`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2}(?:,?\s+\d{4})?\b|\b\d{4}-\d{2}-\d{2}\b`)
)

// ExtractFromText pattern-matches availability rows out of the page's
// rendered text. Headers, navigation and unrelated sections simply never
// match; zero hits is a normal result on a fully booked page.
func ExtractFromText(pageText string) []models.RawCandidate {
	var out []models.RawCandidate
	seq := 0
	for _, m := range rowPattern.FindAllStringSubmatch(pageText, -1) {
		site := strings.TrimSpace(m[1])
		status := strings.TrimSpace(m[2])
		if site == "" {
			continue
		}

		fields := map[string]string{
			"site":   site,
			"status": status,
			"raw":    strings.TrimSpace(m[0]),
		}
		if price := textPriceRe.FindString(m[0]); price != "" {
			fields["price"] = price
		}
		if dates := textDateRe.FindAllString(m[0], 2); len(dates) > 0 {
			fields["arrival"] = dates[0]
			if len(dates) > 1 {
				fields["departure"] = dates[1]
			}
		}

		seq++
		out = append(out, models.RawCandidate{
			Origin: models.OriginText,
			Fields: fields,
			Seq:    seq,
		})
	}
	return out
}
