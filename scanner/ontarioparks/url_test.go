package ontarioparks

import (
	"strings"
	"testing"
	"time"

	"campscan/models"
)

func testParams() models.SearchParams {
	return models.SearchParams{
		Arrival:        time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		Departure:      time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		PartySize:      4,
		EquipmentID:    "-32768",
		SubEquipmentID: "-32765",
	}
}

func TestBuildSearchURL(t *testing.T) {
	base := "https://reservations.ontarioparks.ca/create-booking/results?resourceLocationId=123&partySize=1"

	built, err := BuildSearchURL(base, testParams())
	if err != nil {
		t.Fatalf("BuildSearchURL() error = %v", err)
	}

	wantParams := []string{
		"startDate=2026-07-10",
		"endDate=2026-07-12",
		"partySize=4",
		"equipmentId=-32768",
		"subEquipmentId=-32765",
		"nights=2",
		"resourceLocationId=123",
	}
	for _, want := range wantParams {
		if !strings.Contains(built, want) {
			t.Errorf("BuildSearchURL() = %q, missing %q", built, want)
		}
	}

	// The stale partySize from the base URL must be overwritten, not doubled.
	if strings.Count(built, "partySize=") != 1 {
		t.Errorf("BuildSearchURL() = %q, want exactly one partySize param", built)
	}
}

func TestBuildSearchURLIdempotent(t *testing.T) {
	base := "https://reservations.ontarioparks.ca/create-booking/results?resourceLocationId=-2147482628"
	params := testParams()

	first, err := BuildSearchURL(base, params)
	if err != nil {
		t.Fatalf("first BuildSearchURL() error = %v", err)
	}
	second, err := BuildSearchURL(first, params)
	if err != nil {
		t.Fatalf("second BuildSearchURL() error = %v", err)
	}

	if first != second {
		t.Errorf("re-merging changed the URL:\n first = %q\nsecond = %q", first, second)
	}
}

func TestBuildSearchURLInvalidBase(t *testing.T) {
	if _, err := BuildSearchURL("://not-a-url", testParams()); err == nil {
		t.Error("BuildSearchURL() with invalid base: want error, got nil")
	}
}
