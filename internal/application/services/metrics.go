package services

import "github.com/prometheus/client_golang/prometheus"

var (
	searchCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_hits_total",
		Help: "Windows served entirely from the aggregated-search TTL cache",
	})

	searchCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_misses_total",
		Help: "Windows that required upstream aggregation",
	})

	upstreamFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upstream_search_pages_total",
		Help: "Upstream search pages fetched during aggregation",
	})

	classificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_classifications_total",
		Help: "Availability classifications by outcome",
	}, []string{"outcome"})

	enrichmentDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "enrichment_batch_duration_seconds",
		Help: "Wall time to enrich one page of venues",
	})

	photoResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "photo_resolutions_total",
		Help: "Photo resolutions by tier (memory, persistent, source, places, none)",
	}, []string{"tier"})
)

func init() {
	prometheus.MustRegister(searchCacheHits)
	prometheus.MustRegister(searchCacheMisses)
	prometheus.MustRegister(upstreamFetches)
	prometheus.MustRegister(classificationsTotal)
	prometheus.MustRegister(enrichmentDuration)
	prometheus.MustRegister(photoResolutions)
}
