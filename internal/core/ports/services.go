package ports

import (
	"context"

	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
)

// SearchService aggregates upstream search pages into stable client windows.
type SearchService interface {
	// Search validates filters, serves the requested window from cache or by
	// aggregating upstream pages, and enriches it when reservation details
	// are present. A failed aggregation returns an error, never a truncated
	// page.
	Search(ctx context.Context, query string, filters *search.Filters, geo search.GeoScope) (*search.PageResult, error)
}

// AvailabilityClassifier determines a venue's bookable times (or the reason
// there are none) for one day and party size.
type AvailabilityClassifier interface {
	Classify(ctx context.Context, venueID, day string, partySize int, desiredTime string) (venue.AvailabilityResult, error)
}

// EnrichmentScheduler fans availability classification across a page of
// venues under a fixed concurrency ceiling.
type EnrichmentScheduler interface {
	// EnrichPage classifies every venue in the window, attributes results by
	// identity, downgrades per-venue failures to StatusUnreachable, and
	// applies the active availability post-filters. The input slice is not
	// mutated.
	EnrichPage(ctx context.Context, venues []venue.Record, filters *search.Filters) []venue.Record
	// HasMoreUnderFilter peeks at the next window and reports whether at
	// least one venue satisfies the active availability filter. Peeks may be
	// cancelled as soon as one match is found.
	HasMoreUnderFilter(ctx context.Context, nextWindow []venue.Record, filters *search.Filters) bool
}

// PhotoResolver resolves a display photo through the tiered cache/fallback
// chain. Absence is a normal outcome, never an error.
type PhotoResolver interface {
	Resolve(ctx context.Context, venueID, venueName string, images *venue.ResponsiveImages) (string, bool)
	// CachedRecord returns the full cached photo payload when one exists.
	CachedRecord(ctx context.Context, venueID, venueName string) (*venue.PhotoRecord, bool)
}

// VenueService serves single-venue details, outbound links and curated
// featured lists.
type VenueService interface {
	Details(ctx context.Context, id string) (*venue.Record, error)
	Links(ctx context.Context, id string) (*venue.Links, error)
	Featured(ctx context.Context, list string, limit int) ([]venue.Record, error)
}

// HealthChecker verifies one dependency is reachable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
