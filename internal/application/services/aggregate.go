package services

import (
	"context"

	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
)

// rejectionTally counts hits dropped per reason during one aggregation. It is
// logged, never returned to clients.
type rejectionTally struct {
	Duplicate int
	Cuisine   int
	Price     int
}

type aggregateResult struct {
	Results       []venue.Record
	UpstreamTotal int
	// HasMore is a heuristic: a full last page suggests the upstream may
	// have more, it does not prove more filtered results exist.
	HasMore bool
	Tally   rejectionTally
}

// aggregate pages through the upstream search until targetCount filtered
// results are accumulated, the upstream is exhausted (short page), or
// maxFetches pages have been issued. Any page fetch error is terminal for
// the whole aggregation: callers must treat it as "no results, error", never
// as a truncated success.
func aggregate(ctx context.Context, fetch ports.FetchPage, pageSize, targetCount int, filters *search.Filters, maxFetches int) (aggregateResult, error) {
	var (
		res          aggregateResult
		seen         = make(map[string]struct{})
		lastPageFull bool
	)

	for page := 1; page <= maxFetches; page++ {
		hits, upstreamTotal, err := fetch(ctx, page)
		if err != nil {
			return aggregateResult{}, err
		}
		if len(hits) == 0 {
			lastPageFull = false
			break
		}
		res.UpstreamTotal = upstreamTotal

		filterHits(hits, filters, seen, &res)

		lastPageFull = len(hits) >= pageSize
		if len(res.Results) >= targetCount {
			break
		}
		// A short page signals upstream exhaustion.
		if len(hits) < pageSize {
			break
		}
	}

	res.HasMore = len(res.Results) > targetCount || lastPageFull
	return res, nil
}

// filterHits appends the surviving venues of one page to the running result,
// preserving upstream hit order. Dedup runs before the content filters so a
// repeated id is tallied as a duplicate, not as a filter rejection.
func filterHits(hits []venue.RawHit, filters *search.Filters, seen map[string]struct{}, res *aggregateResult) {
	for i := range hits {
		v := hits[i].Venue()
		if v.Name == "" {
			continue
		}

		id := string(v.ID)
		if _, dup := seen[id]; dup {
			res.Tally.Duplicate++
			continue
		}
		seen[id] = struct{}{}

		if !venue.MatchesCuisine(v.Type, filters.Cuisines) {
			res.Tally.Cuisine++
			continue
		}
		if !venue.MatchesPrice(v.Price(), filters.PriceRanges) {
			res.Tally.Price++
			continue
		}

		res.Results = append(res.Results, v.ToRecord())
	}
}
