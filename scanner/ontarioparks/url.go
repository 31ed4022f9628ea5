package ontarioparks

import (
	"fmt"
	"net/url"
	"strconv"

	"campscan/models"
)

const dateLayout = "2006-01-02"

// BuildSearchURL merges the search parameters into a campground's base
// results URL. Existing query parameters (resourceLocationId and friends)
// are preserved; date/party/equipment values are overwritten, so re-merging
// across interaction rounds never duplicates a parameter.
func BuildSearchURL(base string, p models.SearchParams) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid search URL %q: %w", base, err)
	}

	q := u.Query()
	q.Set("startDate", p.Arrival.Format(dateLayout))
	q.Set("endDate", p.Departure.Format(dateLayout))
	q.Set("partySize", strconv.Itoa(p.PartySize))
	if p.EquipmentID != "" {
		q.Set("equipmentId", p.EquipmentID)
	}
	if p.SubEquipmentID != "" {
		q.Set("subEquipmentId", p.SubEquipmentID)
	}
	if nights := p.Nights(); nights > 0 {
		q.Set("nights", strconv.Itoa(nights))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
