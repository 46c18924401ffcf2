package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
	"github.com/tablescout/tablescout/internal/infrastructure/memcache"
)

// PhotoService resolves a display photo for a venue through an ordered chain
// of tiers: process-local memory, the persistent blob cache, the upstream's
// free image payload, and finally the paid places lookup. Every successful
// resolution below the caches is written back to both cache tiers. Photo
// unavailability is a normal outcome, never an error.
type PhotoService struct {
	memory     *memcache.Store[venue.PhotoRecord]
	persistent ports.BlobCache
	places     ports.PlacesTransport
	city       string
	logger     *logrus.Logger
}

// NewPhotoService creates the resolution chain.
func NewPhotoService(memory *memcache.Store[venue.PhotoRecord], persistent ports.BlobCache, places ports.PlacesTransport, city string, logger *logrus.Logger) *PhotoService {
	return &PhotoService{
		memory:     memory,
		persistent: persistent,
		places:     places,
		city:       city,
		logger:     logger,
	}
}

// Resolve implements ports.PhotoResolver.
func (s *PhotoService) Resolve(ctx context.Context, venueID, venueName string, images *venue.ResponsiveImages) (string, bool) {
	log := s.logger.WithFields(logrus.Fields{"venue": venueID, "name": venueName})
	memKey := venue.PhotoCacheKey(venueID, venueName)

	// Tier 1: process-local memory.
	if rec, ok := s.memory.Get(memKey); ok && rec.PhotoURL != "" {
		photoResolutions.WithLabelValues("memory").Inc()
		log.Debug("photo cache hit: memory")
		return rec.PhotoURL, true
	}

	// Tier 2: persistent blob cache, keyed by venue id alone so a renamed
	// venue still hits. A read failure falls through, it never aborts.
	if rec, ok := s.persistentGet(ctx, venueID); ok && rec.PhotoURL != "" {
		s.memory.Set(memKey, *rec)
		photoResolutions.WithLabelValues("persistent").Inc()
		log.Debug("photo cache hit: persistent, promoted to memory")
		return rec.PhotoURL, true
	}

	// Tier 3: the upstream's own image payload, zero external cost.
	if images != nil {
		if url, ok := images.BestURL(); ok {
			rec := venue.PhotoRecord{
				PhotoURL:     url,
				PhotoURLs:    []string{url},
				PlaceName:    venueName,
				PlaceAddress: "N/A",
				Source:       venue.PhotoSourceUpstream,
			}
			s.writeBack(ctx, memKey, venueID, rec)
			photoResolutions.WithLabelValues("source").Inc()
			log.Debug("photo resolved from upstream image payload")
			return url, true
		}
	}

	// Tier 4: paid places lookup, last resort.
	if venueID == "" || venueName == "" {
		photoResolutions.WithLabelValues("none").Inc()
		return "", false
	}
	photo, err := s.places.SearchPhoto(ctx, fmt.Sprintf("%s restaurant %s", venueName, s.city))
	if err != nil {
		photoResolutions.WithLabelValues("none").Inc()
		log.WithError(err).Warn("paid photo lookup failed")
		return "", false
	}
	if photo == nil {
		photoResolutions.WithLabelValues("none").Inc()
		log.Debug("no photo found at any tier")
		return "", false
	}

	rec := venue.PhotoRecord{
		PhotoURL:     photo.URL,
		PhotoURLs:    []string{photo.URL},
		PlaceName:    photo.PlaceName,
		PlaceAddress: photo.PlaceAddress,
		Source:       venue.PhotoSourcePlaces,
	}
	s.writeBack(ctx, memKey, venueID, rec)
	photoResolutions.WithLabelValues("places").Inc()
	log.Debug("photo resolved from paid places lookup")
	return photo.URL, true
}

// CachedRecord implements ports.PhotoResolver.
func (s *PhotoService) CachedRecord(ctx context.Context, venueID, venueName string) (*venue.PhotoRecord, bool) {
	if rec, ok := s.memory.Get(venue.PhotoCacheKey(venueID, venueName)); ok {
		return &rec, true
	}
	if rec, ok := s.persistentGet(ctx, venueID); ok {
		return rec, true
	}
	return nil, false
}

func (s *PhotoService) persistentGet(ctx context.Context, venueID string) (*venue.PhotoRecord, bool) {
	b, ok, err := s.persistent.Get(ctx, venueID)
	if err != nil {
		s.logger.WithField("venue", venueID).WithError(err).Warn("persistent photo cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var rec venue.PhotoRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		s.logger.WithField("venue", venueID).WithError(err).Warn("corrupt persistent photo record")
		return nil, false
	}
	return &rec, true
}

// writeBack stores the record in both tiers, last write wins. A persistent
// write failure is logged and absorbed; the memory tier still serves the
// process.
func (s *PhotoService) writeBack(ctx context.Context, memKey, venueID string, rec venue.PhotoRecord) {
	s.memory.Set(memKey, rec)
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.persistent.Set(ctx, venueID, b, 0); err != nil {
		s.logger.WithField("venue", venueID).WithError(err).Warn("persistent photo cache write failed")
	}
}
