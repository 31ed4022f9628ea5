package ontarioparks

import (
	"encoding/json"
	"testing"
	"time"

	"campscan/models"
	"campscan/services"
	"campscan/utils"
)

// Exercises the full extraction pipeline the orchestrator runs each round:
// a stub network response and the matching rendered text both describe the
// same row, and the result must be a single deduplicated record.
func TestPipelineReconcilesNetworkAndTextSignals(t *testing.T) {
	params := models.SearchParams{
		Arrival:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		Departure: time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		PartySize: 2,
	}
	campground := "Algonquin - Lake of Two Rivers"

	stubBody := `{
		"resourceAvailability": [{
			"unitName": "B7",
			"status": "Reserved",
			"startDate": "2026-07-10",
			"endDate": "2026-07-12",
			"price": "$45.00"
		}]
	}`
	var payload interface{}
	if err := json.Unmarshal([]byte(stubBody), &payload); err != nil {
		t.Fatalf("bad stub body: %v", err)
	}

	var candidates []models.RawCandidate
	for i, fields := range extractRows(payload) {
		candidates = append(candidates, models.RawCandidate{
			Origin: models.OriginNetwork,
			Fields: fields,
			Seq:    i + 1,
		})
	}
	if len(candidates) != 1 {
		t.Fatalf("network extraction yielded %d candidates, want 1", len(candidates))
	}

	stubText := "Campsite results\nSite B7 Lakeside $45.00 Reserved\nShowing 1 of 1"
	candidates = append(candidates, ExtractFromText(stubText)...)
	if len(candidates) != 2 {
		t.Fatalf("combined extraction yielded %d candidates, want 2", len(candidates))
	}

	normalizer := services.NewNormalizer(utils.NewLogger(), params)
	var records []*models.AvailabilityRecord
	var incoming []*models.AvailabilityRecord
	for _, c := range candidates {
		if rec := normalizer.Normalize(c, campground); rec != nil {
			incoming = append(incoming, rec)
		}
	}
	records = services.Merge(records, incoming)

	if len(records) != 1 {
		t.Fatalf("merged %d records, want exactly 1 (no duplicate rows)", len(records))
	}

	got := records[0]
	if got.Campground != campground {
		t.Errorf("campground = %q, want %q", got.Campground, campground)
	}
	if got.Site != "B7" {
		t.Errorf("site = %q, want B7", got.Site)
	}
	if got.Price == nil || *got.Price != 45.0 {
		t.Errorf("price = %v, want 45.00", got.Price)
	}
	if got.Status != models.StatusUnavailable {
		t.Errorf("status = %q, want unavailable (Reserved maps to unavailable)", got.Status)
	}
	if got.Origin != models.OriginNetwork {
		t.Errorf("origin = %q, want network (trusted over text on ties)", got.Origin)
	}
	if !got.Arrival.Equal(params.Arrival) || !got.Departure.Equal(params.Departure) {
		t.Errorf("dates = %v / %v, want the requested range", got.Arrival, got.Departure)
	}
}

func TestSessionErrorIdentity(t *testing.T) {
	base := &SessionError{Campground: "Algonquin", Err: errForTest}
	if base.Unwrap() != errForTest {
		t.Error("Unwrap() should expose the underlying error")
	}
	if base.Error() == "" {
		t.Error("Error() should describe the failed campground")
	}
}

var errForTest = &timeoutErr{}

type timeoutErr struct{}

func (e *timeoutErr) Error() string { return "chrome failed to start" }
