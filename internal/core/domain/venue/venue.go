package venue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Record is one restaurant as served to clients. Once a record has been
// placed in an aggregated result list it is treated as immutable; enrichment
// works on copies (see the enrichment scheduler).
type Record struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	PriceRange int      `json:"priceRange"`
	Location   Location `json:"location"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PhotoURL   string   `json:"photoUrl,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`

	// Filled by availability enrichment. Exactly one of the two is set on an
	// enriched record: non-empty AvailableTimes, or a non-empty status.
	AvailableTimes     []string           `json:"availableTimes,omitempty"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus,omitempty"`
}

type Location struct {
	Neighborhood string `json:"neighborhood"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	Address      string `json:"address"`
}

// ID is the identity key for deduplication across search pages.
func (r *Record) Identity() string { return r.ID }

// RawHit is a single hit from the upstream search response. Some upstream
// endpoints nest the venue under _source, others return it inline.
type RawHit struct {
	Source *RawVenue `json:"_source"`
	RawVenue
}

// Venue returns the nested venue when present, the inline one otherwise.
func (h *RawHit) Venue() *RawVenue {
	if h.Source != nil {
		return h.Source
	}
	return &h.RawVenue
}

// RawVenue mirrors the upstream venue document.
type RawVenue struct {
	ID           VenueID          `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	PriceRangeID int              `json:"price_range_id"`
	PriceRange   int              `json:"price_range"`
	Locality     string           `json:"locality"`
	Region       string           `json:"region"`
	Location     RawLocation      `json:"location"`
	Geo          *RawGeo          `json:"_geoloc"`
	Images       ResponsiveImages `json:"responsive_images"`
	Rater        []Rater          `json:"rater"`
}

type RawLocation struct {
	Address1     string `json:"address_1"`
	Neighborhood string `json:"neighborhood"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
}

// Links are the outbound deep links for a venue.
type Links struct {
	Booking    string `json:"booking"`
	GoogleMaps string `json:"googleMaps,omitempty"`
}

type RawGeo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Rater struct {
	Score float64 `json:"score"`
}

// Price returns whichever price tier field the upstream populated.
func (v *RawVenue) Price() int {
	if v.PriceRangeID != 0 {
		return v.PriceRangeID
	}
	return v.PriceRange
}

// ToRecord converts an upstream venue into a client-facing Record.
func (v *RawVenue) ToRecord() Record {
	rec := Record{
		ID:         string(v.ID),
		Name:       v.Name,
		Type:       v.Type,
		PriceRange: v.Price(),
		Location: Location{
			Neighborhood: v.Location.Neighborhood,
			Locality:     v.Locality,
			Region:       v.Region,
		},
	}
	if rec.Location.Locality == "" {
		rec.Location.Locality = v.Location.Locality
	}
	if rec.Location.Region == "" {
		rec.Location.Region = v.Location.Region
	}
	if v.Location.Address1 != "" {
		rec.Location.Address = fmt.Sprintf("%s, %s, %s", v.Location.Address1, rec.Location.Locality, rec.Location.Region)
	}
	if v.Geo != nil {
		lat, lng := v.Geo.Lat, v.Geo.Lng
		rec.Latitude = &lat
		rec.Longitude = &lng
	}
	if len(v.Rater) > 0 {
		score := v.Rater[0].Score
		rec.Rating = &score
	}
	return rec
}

// VenueID normalizes the two id shapes the upstream uses: a plain scalar, or
// an object keyed by provider ({"resy": 123}).
type VenueID string

func (id *VenueID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	switch data[0] {
	case '{':
		var m map[string]json.Number
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		if v, ok := m["resy"]; ok {
			*id = VenueID(v.String())
			return nil
		}
		// Fall back to the first provider key in sorted order.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > 0 {
			*id = VenueID(m[keys[0]].String())
		}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = VenueID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = VenueID(n.String())
		return nil
	}
}

func (id VenueID) MarshalJSON() ([]byte, error) { return json.Marshal(string(id)) }

// ResponsiveImages is the upstream's free image payload: urls maps file name
// -> aspect ratio -> width -> URL.
type ResponsiveImages struct {
	URLs      map[string]map[string]map[string]string `json:"urls"`
	FileNames []string                                `json:"file_names"`
}

const (
	preferredAspect = "1:1"
	preferredWidth  = "400"
)

// BestURL picks a usable image reference: the 1:1 aspect at the 400px width
// of the first file when present, otherwise any variant in deterministic
// (sorted) order. ok is false when the payload carries no usable URL.
func (ri ResponsiveImages) BestURL() (string, bool) {
	if len(ri.URLs) == 0 || len(ri.FileNames) == 0 {
		return "", false
	}
	aspects, ok := ri.URLs[ri.FileNames[0]]
	if !ok {
		return "", false
	}
	if widths, ok := aspects[preferredAspect]; ok {
		if url, ok := widths[preferredWidth]; ok && url != "" {
			return url, true
		}
	}
	for _, aspect := range sortedKeys(aspects) {
		widths := aspects[aspect]
		for _, width := range sortedKeys(widths) {
			if url := widths[width]; url != "" {
				return url, true
			}
		}
	}
	return "", false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BookingSlug derives the upstream booking-site URL slug from a venue name,
// dropping a " - Neighborhood" suffix when present.
func BookingSlug(name string) string {
	if i := strings.Index(name, " - "); i >= 0 {
		name = name[:i]
	}
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "&", "and")
	return slug
}

// MatchesCuisine reports whether the venue type satisfies a cuisine filter.
// An empty type never fails the filter: absence of data is not a mismatch.
func MatchesCuisine(venueType string, cuisines []string) bool {
	if len(cuisines) == 0 || venueType == "" {
		return true
	}
	lower := strings.ToLower(venueType)
	for _, c := range cuisines {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// MatchesPrice reports whether the venue price tier satisfies a price filter.
func MatchesPrice(price int, priceRanges []int) bool {
	if len(priceRanges) == 0 {
		return true
	}
	for _, p := range priceRanges {
		if price == p {
			return true
		}
	}
	return false
}
