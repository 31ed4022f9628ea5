package services

import "campscan/models"

// Merge folds incoming records into existing, deduplicating on the
// (campground, site, arrival, departure) key. A pure function: inputs are
// never mutated, the result is a fresh slice preserving first-seen key
// order. Sorting is an export-time concern, not handled here.
func Merge(existing, incoming []*models.AvailabilityRecord) []*models.AvailabilityRecord {
	out := make([]*models.AvailabilityRecord, len(existing))
	copy(out, existing)

	index := make(map[string]int, len(out))
	for i, rec := range out {
		index[rec.Key()] = i
	}

	for _, rec := range incoming {
		key := rec.Key()
		if i, ok := index[key]; ok {
			out[i] = resolve(out[i], rec)
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// resolve picks between two records sharing a key: the more complete one
// wins; on equal completeness a network record beats a text record, then
// the later-arriving one wins. The loser still fills in any fields the
// winner is missing.
func resolve(a, b *models.AvailabilityRecord) *models.AvailabilityRecord {
	ca, cb := a.Completeness(), b.Completeness()
	switch {
	case cb > ca:
		return fillFrom(b, a)
	case ca > cb:
		return fillFrom(a, b)
	}
	if a.Origin != b.Origin {
		if b.Origin == models.OriginNetwork {
			return fillFrom(b, a)
		}
		return fillFrom(a, b)
	}
	if b.Seq >= a.Seq {
		return fillFrom(b, a)
	}
	return fillFrom(a, b)
}

// fillFrom copies the winner and backfills its missing fields from the
// loser, so partial signals from the two sources still combine.
func fillFrom(winner, loser *models.AvailabilityRecord) *models.AvailabilityRecord {
	merged := *winner
	if merged.Arrival.IsZero() {
		merged.Arrival = loser.Arrival
	}
	if merged.Departure.IsZero() {
		merged.Departure = loser.Departure
	}
	if merged.Price == nil && loser.Price != nil {
		merged.Price = loser.Price
		if merged.Currency == "" {
			merged.Currency = loser.Currency
		}
	}
	if merged.Status == models.StatusUnknown {
		merged.Status = loser.Status
	}
	if merged.RawText == "" {
		merged.RawText = loser.RawText
	}
	return &merged
}
