package search

import "github.com/tablescout/tablescout/internal/core/domain/venue"

// PageResult is one client-facing window of aggregated results.
type PageResult struct {
	Venues   []venue.Record `json:"data"`
	Offset   int            `json:"offset"`
	PageSize int            `json:"perPage"`
	// NextOffset is nil when pagination should stop.
	NextOffset *int `json:"nextOffset"`
	// Total is the upstream unfiltered estimate for plain searches, or the
	// cumulative offset+page count when an availability filter is active.
	Total int `json:"total"`
}

// HasMore reports whether a further window exists.
func (p *PageResult) HasMore() bool { return p.NextOffset != nil }

// CacheEntry is the accumulated aggregation stored under one cache key.
// Results are a read-only view once stored; callers must copy before
// mutating.
type CacheEntry struct {
	Results       []venue.Record
	UpstreamTotal int
}
