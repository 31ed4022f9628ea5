package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"campscan/models"
	"campscan/utils"
)

// Date formats the platform has been observed to render. Year-less formats
// are resolved against the scan's arrival year.
var dateFormats = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2",
	"January 2",
}

var yearlessFormats = map[string]bool{
	"Jan 2":     true,
	"January 2": true,
}

// statusVocab maps observed status text to the three-way enum. Unrecognized
// text falls through to unknown. Adjust here as real-world samples surface.
var statusVocab = map[string]models.Status{
	"available":     models.StatusAvailable,
	"open":          models.StatusAvailable,
	"yes":           models.StatusAvailable,
	"true":          models.StatusAvailable,
	"unavailable":   models.StatusUnavailable,
	"not available": models.StatusUnavailable,
	"sold out":      models.StatusUnavailable,
	"soldout":       models.StatusUnavailable,
	"reserved":      models.StatusUnavailable,
	"booked":        models.StatusUnavailable,
	"full":          models.StatusUnavailable,
	"closed":        models.StatusUnavailable,
	"no":            models.StatusUnavailable,
	"false":         models.StatusUnavailable,
}

var (
	priceRegex = regexp.MustCompile(`(US\$|C\$|CAD|USD|\$)?\s*([\d,]+(?:\.\d{1,2})?)`)
	spaceRe    = regexp.MustCompile(`\s+`)
	siteTailRe = regexp.MustCompile(`[^\w-].*$`)
)

// Normalizer converts raw candidates into canonical availability records.
// The search window supplies the reference year for year-less dates and the
// fallback date range when a candidate carries no dates at all (the whole
// results page is scoped to that window).
type Normalizer struct {
	logger *utils.Logger
	window models.SearchParams
}

// NewNormalizer creates a Normalizer
func NewNormalizer(logger *utils.Logger, window models.SearchParams) *Normalizer {
	return &Normalizer{logger: logger, window: window}
}

// Normalize converts one candidate, or returns nil when no usable site
// identifier can be recovered. Every other missing field degrades to a
// null/unknown value instead of rejecting the record.
func (n *Normalizer) Normalize(c models.RawCandidate, campground string) *models.AvailabilityRecord {
	site := canonicalSite(c.Fields["site"])
	if site == "" {
		n.logger.Debug("Dropping candidate without site identifier (origin=%s)", c.Origin)
		return nil
	}

	rec := &models.AvailabilityRecord{
		Campground: campground,
		Site:       site,
		Status:     mapStatus(c.Fields["status"]),
		Origin:     c.Origin,
		Seq:        c.Seq,
		RawText:    c.Fields["raw"],
	}

	rec.Arrival = n.parseDate(c.Fields["arrival"])
	rec.Departure = n.parseDate(c.Fields["departure"])
	if rec.Arrival.IsZero() && rec.Departure.IsZero() {
		rec.Arrival = n.window.Arrival
		rec.Departure = n.window.Departure
	}
	if !rec.Arrival.IsZero() && !rec.Departure.IsZero() && rec.Arrival.After(rec.Departure) {
		rec.Arrival, rec.Departure = rec.Departure, rec.Arrival
	}

	if price, currency, ok := parsePrice(c.Fields["price"]); ok {
		rec.Price = &price
		rec.Currency = currency
	}

	return rec
}

// canonicalSite reduces a scraped site label to its identifier token:
// "Site B7 · Pines Loop" and "B7" both become "B7".
func canonicalSite(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if lower == "site" {
		return ""
	}
	if strings.HasPrefix(lower, "site") {
		rest := strings.TrimSpace(s[4:])
		if rest != "" {
			s = rest
		}
	}
	s = siteTailRe.ReplaceAllString(s, "")
	return s
}

func (n *Normalizer) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ","))
	if raw == "" {
		return time.Time{}
	}
	for _, format := range dateFormats {
		t, err := time.Parse(format, raw)
		if err != nil {
			continue
		}
		if yearlessFormats[format] {
			year := n.window.Arrival.Year()
			if year == 1 || year == 0 {
				year = time.Now().Year()
			}
			return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

func mapStatus(raw string) models.Status {
	key := spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), " ")
	if status, ok := statusVocab[key]; ok {
		return status
	}
	return models.StatusUnknown
}

// parsePrice strips currency symbols and separators, yielding a decimal
// amount and a currency code. Ontario Parks prices in CAD unless the text
// carries an explicit US marker.
func parsePrice(raw string) (float64, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "", false
	}

	m := priceRegex.FindStringSubmatch(raw)
	if len(m) < 3 || m[2] == "" {
		return 0, "", false
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return 0, "", false
	}

	currency := "CAD"
	if m[1] == "US$" || m[1] == "USD" {
		currency = "USD"
	}
	return amount, currency, true
}
