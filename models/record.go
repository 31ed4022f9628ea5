package models

import "time"

// Status is the three-way availability classification for a site.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusUnknown     Status = "unknown"
)

// Origin identifies which extraction source produced a candidate.
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginText    Origin = "text"
)

// Campground is one named search page to scan. List order is scan order.
type Campground struct {
	Name string
	URL  string
}

// SearchParams holds the user's search settings, built once per run.
// Arrival must be strictly before Departure.
type SearchParams struct {
	Arrival        time.Time
	Departure      time.Time
	PartySize      int
	EquipmentID    string
	SubEquipmentID string
}

// Nights returns the stay length in nights.
func (p SearchParams) Nights() int {
	return int(p.Departure.Sub(p.Arrival).Hours() / 24)
}

// RawCandidate is an unvalidated availability signal from one source.
// Fields carries whatever the source recovered (site, dates, price, status,
// raw); Seq preserves arrival order for merge tie-breaking.
type RawCandidate struct {
	Origin Origin
	Fields map[string]string
	Seq    int
}

// AvailabilityRecord is the canonical, normalized availability row.
// Campground always comes from the driving Campground entry, never from
// scraped text. Zero time values mean the date was not recovered; a nil
// Price means no price was found.
type AvailabilityRecord struct {
	Campground string
	Site       string
	Arrival    time.Time
	Departure  time.Time
	Price      *float64
	Currency   string
	Status     Status
	Origin     Origin
	Seq        int
	RawText    string
}

// Key is the dedup identity: records sharing it are the same logical row.
func (r *AvailabilityRecord) Key() string {
	return r.Campground + "|" + r.Site + "|" + dateKey(r.Arrival) + "|" + dateKey(r.Departure)
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Completeness counts how many optional fields were recovered; the merge
// engine prefers the more complete record for a shared key.
func (r *AvailabilityRecord) Completeness() int {
	n := 0
	if !r.Arrival.IsZero() {
		n++
	}
	if !r.Departure.IsZero() {
		n++
	}
	if r.Price != nil {
		n++
	}
	if r.Status != StatusUnknown {
		n++
	}
	return n
}

// ScanStatus classifies the outcome of one campground scan.
type ScanStatus string

const (
	ScanSuccess ScanStatus = "success"
	ScanPartial ScanStatus = "partial"
	ScanFailed  ScanStatus = "failed"
)

// ScanResult is the unit handed to export: all records for one campground
// plus run metadata.
type ScanResult struct {
	Campground    Campground
	Records       []*AvailabilityRecord
	Status        ScanStatus
	ScannedAt     time.Time
	CandidatesSeen int
	RecordsKept    int
}
