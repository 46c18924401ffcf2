package ports

import (
	"context"
	"errors"

	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
)

// ErrUpstreamUnavailable marks a transport error or non-success status from
// any upstream endpoint. It aborts the request that hit it; retry policy, if
// any, belongs to the transport layer, not the core.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// FetchPage fetches one upstream search page (1-based). Implementations must
// return an error on non-success status, never a truncated page.
type FetchPage func(ctx context.Context, page int) (hits []venue.RawHit, upstreamTotal int, err error)

// SearchTransport wraps the upstream paginated venue search.
type SearchTransport interface {
	// SearchPage posts one search request and returns the page's hits plus
	// the upstream's unfiltered total estimate.
	SearchPage(ctx context.Context, query string, filters *search.Filters, geo search.GeoScope, page int) ([]venue.RawHit, int, error)
	// PageSize is the upstream's fixed page size; the aggregator uses it to
	// detect exhaustion.
	PageSize() int
}

// AvailabilityTransport wraps the upstream reservation calendar and slot
// inventory endpoints.
type AvailabilityTransport interface {
	Calendar(ctx context.Context, venueID, day string, partySize int) ([]venue.CalendarEntry, error)
	FindSlots(ctx context.Context, venueID, day string, partySize int) ([]venue.Slot, error)
}

// VenueTransport wraps the upstream single-venue and curated-list endpoints.
type VenueTransport interface {
	Venue(ctx context.Context, id string) (*venue.RawVenue, error)
	CityList(ctx context.Context, list string, limit int) ([]venue.RawVenue, error)
}

// PlacePhoto is a candidate photo from the paid places lookup.
type PlacePhoto struct {
	URL          string
	PlaceName    string
	PlaceAddress string
}

// PlacesTransport wraps the paid external places API. Lookups that find
// nothing return (nil, nil) / ("", nil): absence is a business outcome, not
// an error.
type PlacesTransport interface {
	// SearchPhoto runs a free-text search and returns the first result's
	// first photo, or nil when the place or its photos are missing.
	SearchPhoto(ctx context.Context, query string) (*PlacePhoto, error)
	// FindPlace resolves a free-text input to a place id for map links.
	FindPlace(ctx context.Context, input string) (string, error)
}

// ImageFetcher downloads raw image bytes for proxying to clients.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, err error)
}
