package services

import (
	"testing"
	"time"

	"campscan/models"
	"campscan/utils"
)

func testWindow() models.SearchParams {
	return models.SearchParams{
		Arrival:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		Departure: time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		PartySize: 2,
	}
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(utils.NewLogger(), testWindow())
}

func TestNormalizePartialCandidate(t *testing.T) {
	n := newTestNormalizer()
	candidate := models.RawCandidate{
		Origin: models.OriginText,
		Fields: map[string]string{
			"site":    "A12",
			"arrival": "Jul 4",
			"status":  "Available",
		},
		Seq: 1,
	}

	rec := n.Normalize(candidate, "Algonquin")

	if rec == nil {
		t.Fatal("Normalize() = nil, want record")
	}
	if rec.Campground != "Algonquin" {
		t.Errorf("campground = %q, want Algonquin", rec.Campground)
	}
	if rec.Site != "A12" {
		t.Errorf("site = %q, want A12", rec.Site)
	}
	wantArrival := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	if !rec.Arrival.Equal(wantArrival) {
		t.Errorf("arrival = %v, want %v", rec.Arrival, wantArrival)
	}
	if rec.Price != nil {
		t.Errorf("price = %v, want nil", *rec.Price)
	}
	if rec.Status != models.StatusAvailable {
		t.Errorf("status = %q, want available", rec.Status)
	}
}

func TestNormalizeDropsSitelessCandidate(t *testing.T) {
	n := newTestNormalizer()
	candidate := models.RawCandidate{
		Origin: models.OriginNetwork,
		Fields: map[string]string{
			"arrival": "2026-07-10",
			"price":   "$45.00",
			"status":  "Available",
		},
	}

	if rec := n.Normalize(candidate, "Algonquin"); rec != nil {
		t.Errorf("Normalize() = %+v, want nil for candidate without site", rec)
	}
}

func TestNormalizeDateFormats(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     time.Time
		wantZero bool
	}{
		{"ISO date", "2026-07-04", time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), false},
		{"Month day", "Jul 4", time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), false},
		{"Month day with year", "Jul 4, 2027", time.Date(2027, 7, 4, 0, 0, 0, 0, time.UTC), false},
		{"Full month", "July 4", time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), false},
		{"Garbage", "next weekend", time.Time{}, true},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.parseDate(tt.raw)
			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("parseDate(%q) = %v, want zero time", tt.raw, got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnparsableDateKept(t *testing.T) {
	n := newTestNormalizer()
	candidate := models.RawCandidate{
		Origin: models.OriginNetwork,
		Fields: map[string]string{
			"site":      "C3",
			"arrival":   "whenever",
			"departure": "2026-07-12",
			"status":    "Sold Out",
		},
	}

	rec := n.Normalize(candidate, "Killbear")
	if rec == nil {
		t.Fatal("Normalize() = nil, want record with null arrival")
	}
	if !rec.Arrival.IsZero() {
		t.Errorf("arrival = %v, want zero (unparsable)", rec.Arrival)
	}
	if rec.Departure.IsZero() {
		t.Error("departure should still be parsed")
	}
	if rec.Status != models.StatusUnavailable {
		t.Errorf("status = %q, want unavailable", rec.Status)
	}
}

func TestNormalizeDefaultsDatesToSearchWindow(t *testing.T) {
	n := newTestNormalizer()
	candidate := models.RawCandidate{
		Origin: models.OriginText,
		Fields: map[string]string{"site": "Site B7", "status": "Reserved"},
	}

	rec := n.Normalize(candidate, "Algonquin")
	if rec == nil {
		t.Fatal("Normalize() = nil, want record")
	}
	if rec.Site != "B7" {
		t.Errorf("site = %q, want B7 (Site prefix stripped)", rec.Site)
	}
	if !rec.Arrival.Equal(testWindow().Arrival) || !rec.Departure.Equal(testWindow().Departure) {
		t.Errorf("dates = %v / %v, want search window %v / %v",
			rec.Arrival, rec.Departure, testWindow().Arrival, testWindow().Departure)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Status
	}{
		{"Available", models.StatusAvailable},
		{"available", models.StatusAvailable},
		{"true", models.StatusAvailable},
		{"Sold Out", models.StatusUnavailable},
		{"Sold  out", models.StatusUnavailable},
		{"Not Available", models.StatusUnavailable},
		{"Reserved", models.StatusUnavailable},
		{"false", models.StatusUnavailable},
		{"Pending review", models.StatusUnknown},
		{"", models.StatusUnknown},
	}

	for _, tt := range tests {
		if got := mapStatus(tt.raw); got != tt.want {
			t.Errorf("mapStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw          string
		wantAmount   float64
		wantCurrency string
		wantOK       bool
	}{
		{"$45.00", 45.0, "CAD", true},
		{"$1,234.50", 1234.5, "CAD", true},
		{"45", 45.0, "CAD", true},
		{"US$30", 30.0, "USD", true},
		{"", 0, "", false},
		{"call for pricing", 0, "", false},
	}

	for _, tt := range tests {
		amount, currency, ok := parsePrice(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("parsePrice(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if amount != tt.wantAmount || currency != tt.wantCurrency {
			t.Errorf("parsePrice(%q) = %v %s, want %v %s",
				tt.raw, amount, currency, tt.wantAmount, tt.wantCurrency)
		}
	}
}
