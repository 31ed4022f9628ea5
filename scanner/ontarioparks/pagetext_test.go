package ontarioparks

import (
	"testing"

	"campscan/models"
)

func TestExtractFromText(t *testing.T) {
	pageText := `Ontario Parks
Create a booking
Results for Jul 10 - Jul 12

Site A12 Pines Loop $45.00 Available
Site B7 Lakeside Sold out
Site C3 Not available

Terms of use · Privacy`

	candidates := ExtractFromText(pageText)

	if len(candidates) != 3 {
		t.Fatalf("ExtractFromText() returned %d candidates, want 3", len(candidates))
	}

	first := candidates[0]
	if first.Origin != models.OriginText {
		t.Errorf("origin = %q, want %q", first.Origin, models.OriginText)
	}
	if first.Fields["status"] != "Available" {
		t.Errorf("first status = %q, want Available", first.Fields["status"])
	}
	if first.Fields["price"] != "$45.00" {
		t.Errorf("first price = %q, want $45.00", first.Fields["price"])
	}
	if first.Fields["raw"] == "" {
		t.Error("raw text not retained")
	}

	if candidates[1].Fields["status"] != "Sold out" {
		t.Errorf("second status = %q, want 'Sold out'", candidates[1].Fields["status"])
	}
	if _, ok := candidates[1].Fields["price"]; ok {
		t.Error("second candidate should have no price field")
	}
	if candidates[2].Fields["status"] != "Not available" {
		t.Errorf("third status = %q, want 'Not available'", candidates[2].Fields["status"])
	}
}

func TestExtractFromTextNoMatches(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty page", ""},
		{"unrelated content", "Welcome to Ontario Parks\nPlan your visit\nPark locator"},
		{"fully booked banner", "No sites match your search. Try different dates."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFromText(tt.text); len(got) != 0 {
				t.Errorf("ExtractFromText(%q) returned %d candidates, want 0", tt.text, len(got))
			}
		})
	}
}
