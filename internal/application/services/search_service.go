package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
	"github.com/tablescout/tablescout/internal/infrastructure/memcache"
)

// PhotoURLBuilder turns a venue identity into the lazy photo URL embedded in
// listings (typically this service's own photo proxy endpoint).
type PhotoURLBuilder func(venueID, venueName string) string

// SearchService drives the pagination-over-filtering aggregation: it pages
// the upstream search until the requested window is covered, caches the
// accumulated results per logical query, and enriches the served window with
// live availability.
type SearchService struct {
	transport      ports.SearchTransport
	cache          *memcache.TTLCache[search.CacheEntry]
	enricher       ports.EnrichmentScheduler
	photoURL       PhotoURLBuilder
	maxFetches     int
	requestTimeout time.Duration
	logger         *logrus.Logger
}

// NewSearchService creates the search aggregation service. The cache is
// injected so its stampede and growth behaviors stay visible and tunable.
func NewSearchService(
	transport ports.SearchTransport,
	cache *memcache.TTLCache[search.CacheEntry],
	enricher ports.EnrichmentScheduler,
	photoURL PhotoURLBuilder,
	cfg *config.SearchConfig,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		transport:      transport,
		cache:          cache,
		enricher:       enricher,
		photoURL:       photoURL,
		maxFetches:     cfg.MaxFetches,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}

// Search implements ports.SearchService.
func (s *SearchService) Search(ctx context.Context, query string, filters *search.Filters, geo search.GeoScope) (*search.PageResult, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	// Per-call transport timeouts do not bound the whole pipeline; one slow
	// upstream could otherwise stretch aggregate+enrich indefinitely.
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	key := search.CacheKey(query, filters, geo)
	required := filters.Offset + filters.PageSize

	all, upstreamTotal, hasMore, err := s.load(ctx, key, query, filters, geo, required)
	if err != nil {
		return nil, err
	}

	window := sliceWindow(all, filters.Offset, filters.PageSize)
	if s.photoURL != nil {
		for i := range window {
			window[i].PhotoURL = s.photoURL(window[i].ID, window[i].Name)
		}
	}

	if filters.WantsEnrichment() && len(window) > 0 {
		window = s.enricher.EnrichPage(ctx, window, filters)
	}

	page := &search.PageResult{
		Venues:   window,
		Offset:   filters.Offset,
		PageSize: filters.PageSize,
	}

	if filters.HasAvailabilityFilter() && filters.WantsEnrichment() {
		// Availability is only known after enrichment, so pagination is
		// decided by peeking at the next window for at least one match.
		potential := filters.Offset + len(window)
		if len(all) > potential {
			next := sliceWindow(all, potential, filters.PageSize)
			if s.enricher.HasMoreUnderFilter(ctx, next, filters) {
				page.NextOffset = &potential
			}
		}
		// The upstream total is meaningless under a post-fetch filter; report
		// the cumulative count instead.
		page.Total = filters.Offset + len(window)
	} else {
		if len(all) > required || hasMore {
			next := filters.Offset + len(window)
			page.NextOffset = &next
		}
		page.Total = upstreamTotal
	}

	return page, nil
}

// load serves the accumulated result list for the logical query: from cache
// when it already covers the requested window, by aggregating upstream pages
// otherwise. Concurrent misses for one key each aggregate independently;
// last write wins.
func (s *SearchService) load(ctx context.Context, key, query string, filters *search.Filters, geo search.GeoScope, required int) ([]venue.Record, int, bool, error) {
	if entry, ok := s.cache.Get(key); ok {
		if len(entry.Results) >= required {
			searchCacheHits.Inc()
			s.logger.WithFields(logrus.Fields{
				"key":    key[:8],
				"cached": len(entry.Results),
				"need":   required,
			}).Debug("serving window from search cache")
			// Cached aggregations are complete for this window; further
			// pages come from the same entry.
			return entry.Results, entry.UpstreamTotal, false, nil
		}
		s.logger.WithFields(logrus.Fields{
			"key":    key[:8],
			"cached": len(entry.Results),
			"need":   required,
		}).Debug("search cache insufficient for window, re-aggregating")
	}
	searchCacheMisses.Inc()

	fetch := func(ctx context.Context, page int) ([]venue.RawHit, int, error) {
		upstreamFetches.Inc()
		return s.transport.SearchPage(ctx, query, filters, geo, page)
	}

	res, err := aggregate(ctx, fetch, s.transport.PageSize(), required, filters, s.maxFetches)
	if err != nil {
		return nil, 0, false, fmt.Errorf("aggregating search results: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":        key[:8],
		"results":    len(res.Results),
		"duplicates": res.Tally.Duplicate,
		"cuisine":    res.Tally.Cuisine,
		"price":      res.Tally.Price,
		"total":      res.UpstreamTotal,
	}).Info("aggregation complete")

	s.cache.Set(key, search.CacheEntry{Results: res.Results, UpstreamTotal: res.UpstreamTotal})
	return res.Results, res.UpstreamTotal, res.HasMore, nil
}

// sliceWindow copies the requested window out of the accumulated list. The
// copy keeps cached records immutable when enrichment mutates the window.
func sliceWindow(all []venue.Record, offset, pageSize int) []venue.Record {
	if offset >= len(all) {
		return nil
	}
	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}
	window := make([]venue.Record, end-offset)
	copy(window, all[offset:end])
	return window
}
