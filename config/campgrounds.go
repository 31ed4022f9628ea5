package config

import (
	"fmt"
	"os"
	"strings"

	"campscan/models"
)

// DefaultCampgrounds is the sample list used when no campgrounds file is
// configured.
const DefaultCampgrounds = `Algonquin - Lake of Two Rivers | https://reservations.ontarioparks.ca/create-booking/results?resourceLocationId=-2147482628
Killbear - George Lake | https://reservations.ontarioparks.ca/create-booking/results?resourceLocationId=-2147482518`

// ParseCampgrounds parses a newline-delimited "Name | URL" list. Name and
// URL split on the first pipe, surrounding whitespace trimmed; blank lines
// and '#' comment lines are skipped.
func ParseCampgrounds(raw string) []models.Campground {
	var entries []models.Campground
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, url, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		url = strings.TrimSpace(url)
		if name == "" || url == "" {
			continue
		}
		entries = append(entries, models.Campground{Name: name, URL: url})
	}
	return entries
}

// LoadCampgrounds reads the configured campgrounds file, or falls back to
// the built-in sample list when none is set.
func LoadCampgrounds(cfg *Config) ([]models.Campground, error) {
	raw := DefaultCampgrounds
	if cfg.CampgroundsFile != "" {
		data, err := os.ReadFile(cfg.CampgroundsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read campgrounds file: %w", err)
		}
		raw = string(data)
	}
	entries := ParseCampgrounds(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid 'Name | URL' campground entries found")
	}
	return entries, nil
}
