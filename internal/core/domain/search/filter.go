package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidFilter marks malformed filter input. It is raised before any
// upstream call is made.
var ErrInvalidFilter = errors.New("invalid search filter")

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
	dayLayout       = "2006-01-02"
	clockLayout     = "15:04"
)

// Filters is the client-side filter set for one request. It is immutable
// once validated.
type Filters struct {
	Query           string
	Cuisines        []string
	PriceRanges     []int
	AvailableOnly   bool
	NotReleasedOnly bool
	Day             string // YYYY-MM-DD
	PartySize       int
	DesiredTime     string // HH:MM, 24-hour
	Offset          int
	PageSize        int
}

// Validate fails fast on malformed input and normalizes the page size into
// [1, MaxPageSize].
func (f *Filters) Validate() error {
	if f.Day != "" {
		if _, err := time.Parse(dayLayout, f.Day); err != nil {
			return fmt.Errorf("%w: day %q is not YYYY-MM-DD", ErrInvalidFilter, f.Day)
		}
	}
	if f.DesiredTime != "" {
		if _, err := time.Parse(clockLayout, f.DesiredTime); err != nil {
			return fmt.Errorf("%w: desired time %q is not HH:MM", ErrInvalidFilter, f.DesiredTime)
		}
	}
	if f.PartySize < 0 {
		return fmt.Errorf("%w: party size must not be negative", ErrInvalidFilter)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidFilter)
	}
	for _, p := range f.PriceRanges {
		if p < 1 || p > 4 {
			return fmt.Errorf("%w: price range %d outside 1-4", ErrInvalidFilter, p)
		}
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return nil
}

// WantsEnrichment reports whether the request carries enough reservation
// detail to classify availability for the page.
func (f *Filters) WantsEnrichment() bool {
	return f.Day != "" && f.PartySize > 0
}

// HasAvailabilityFilter reports whether an availability-dependent filter is
// active, which changes pagination into lookahead mode.
func (f *Filters) HasAvailabilityFilter() bool {
	return f.AvailableOnly || f.NotReleasedOnly
}

// DesiredMinutes converts DesiredTime into minutes from midnight.
func (f *Filters) DesiredMinutes() (int, bool) {
	if f.DesiredTime == "" {
		return 0, false
	}
	t, err := time.Parse(clockLayout, f.DesiredTime)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// GeoScope restricts a search geographically: either a center with a radius
// in meters, or a bounding box [swLat, swLng, neLat, neLng].
type GeoScope struct {
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	Radius      int       `json:"radius,omitempty"`
	BoundingBox []float64 `json:"bounding_box,omitempty"`
}

// IsRadius reports whether the scope is center+radius shaped.
func (g GeoScope) IsRadius() bool { return len(g.BoundingBox) == 0 }

// cacheKeyParams is the canonical serialization input for CacheKey. Offset
// and page size are deliberately excluded so one cache entry serves every
// page of a logical query.
type cacheKeyParams struct {
	Query         string   `json:"query"`
	Cuisines      []string `json:"cuisines"`
	PriceRanges   []int    `json:"price_ranges"`
	AvailableOnly bool     `json:"available_only"`
	Day           string   `json:"day"`
	PartySize     int      `json:"party_size"`
	DesiredTime   string   `json:"desired_time"`
	Geo           GeoScope `json:"geo"`
}

// CacheKey derives a deterministic digest for the logical query. The same
// query, filters and geo scope always hash to the same key, across process
// restarts.
func CacheKey(query string, f *Filters, geo GeoScope) string {
	cuisines := append([]string(nil), f.Cuisines...)
	sort.Strings(cuisines)
	prices := append([]int(nil), f.PriceRanges...)
	sort.Ints(prices)

	params := cacheKeyParams{
		Query:         query,
		Cuisines:      cuisines,
		PriceRanges:   prices,
		AvailableOnly: f.AvailableOnly,
		Day:           f.Day,
		PartySize:     f.PartySize,
		DesiredTime:   f.DesiredTime,
		Geo:           geo,
	}
	// Struct marshaling is field-ordered, so the serialization is stable.
	b, _ := json.Marshal(params)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
