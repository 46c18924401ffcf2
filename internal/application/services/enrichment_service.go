package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// EnrichmentScheduler fans availability classification across a page of
// venues with a fixed concurrency ceiling. Work items complete in arbitrary
// order; results are attributed back to their venue by index, never by
// completion order.
type EnrichmentScheduler struct {
	classifier  ports.AvailabilityClassifier
	concurrency int
	logger      *logrus.Logger
}

// NewEnrichmentScheduler creates a scheduler with the given worker-pool
// width.
func NewEnrichmentScheduler(classifier ports.AvailabilityClassifier, concurrency int, logger *logrus.Logger) *EnrichmentScheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &EnrichmentScheduler{classifier: classifier, concurrency: concurrency, logger: logger}
}

// EnrichPage implements ports.EnrichmentScheduler. It always awaits the full
// batch: per-venue failures are downgraded to StatusUnreachable and never
// abort the page. The returned slice holds enriched copies; the input is not
// mutated.
func (s *EnrichmentScheduler) EnrichPage(ctx context.Context, venues []venue.Record, filters *search.Filters) []venue.Record {
	if len(venues) == 0 {
		return venues
	}
	start := time.Now()
	batchID := uuid.NewString()

	enriched := make([]venue.Record, len(venues))
	copy(enriched, venues)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range enriched {
		i := i
		g.Go(func() error {
			rec := &enriched[i]
			result, err := s.classifier.Classify(ctx, rec.ID, filters.Day, filters.PartySize, filters.DesiredTime)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"batch": batchID,
					"venue": rec.ID,
				}).WithError(err).Warn("classification failed, marking unreachable")
				rec.AvailabilityStatus = venue.StatusUnreachable
				return nil
			}
			if result.HasTimes() {
				rec.AvailableTimes = result.Times
			} else {
				rec.AvailabilityStatus = result.Status
			}
			return nil
		})
	}
	_ = g.Wait()

	enriched = applyAvailabilityFilters(enriched, filters)

	enrichmentDuration.Observe(time.Since(start).Seconds())
	s.logger.WithFields(logrus.Fields{
		"batch":    batchID,
		"venues":   len(venues),
		"returned": len(enriched),
		"elapsed":  time.Since(start).String(),
	}).Debug("page enrichment complete")
	return enriched
}

// applyAvailabilityFilters drops venues that fail the active availability
// filters. Both filters apply independently when both are set, which makes
// their combination effectively empty; the pair is contradictory by intent
// and callers should not activate both.
func applyAvailabilityFilters(recs []venue.Record, filters *search.Filters) []venue.Record {
	if !filters.HasAvailabilityFilter() {
		return recs
	}
	kept := recs[:0]
	for _, r := range recs {
		if filters.AvailableOnly && len(r.AvailableTimes) == 0 {
			continue
		}
		if filters.NotReleasedOnly && r.AvailabilityStatus != venue.StatusNotReleased {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// HasMoreUnderFilter implements ports.EnrichmentScheduler. It peeks at the
// next window purely to answer "is there at least one more match": as soon
// as one qualifies, the remaining in-flight peeks are cancelled. Peek errors
// are ignored, an unreachable venue simply does not count as a match.
func (s *EnrichmentScheduler) HasMoreUnderFilter(ctx context.Context, nextWindow []venue.Record, filters *search.Filters) bool {
	if len(nextWindow) == 0 || !filters.HasAvailabilityFilter() {
		return false
	}

	peekCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var found atomic.Bool
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range nextWindow {
		rec := nextWindow[i]
		g.Go(func() error {
			if found.Load() {
				return nil
			}
			result, err := s.classifier.Classify(peekCtx, rec.ID, filters.Day, filters.PartySize, filters.DesiredTime)
			if err != nil {
				return nil
			}
			if matchesAvailabilityFilter(result, filters) {
				found.Store(true)
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.WithFields(logrus.Fields{
		"peeked": len(nextWindow),
		"match":  found.Load(),
	}).Debug("lookahead peek complete")
	return found.Load()
}

// matchesAvailabilityFilter mirrors the lookahead's match rule: availableOnly
// takes precedence when both filters are active.
func matchesAvailabilityFilter(result venue.AvailabilityResult, filters *search.Filters) bool {
	if filters.AvailableOnly {
		return result.HasTimes()
	}
	if filters.NotReleasedOnly {
		return result.Status == venue.StatusNotReleased
	}
	return false
}
