package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
)

// VenueService serves single-venue details, outbound links and the curated
// featured lists.
type VenueService struct {
	venues ports.VenueTransport
	photos ports.PhotoResolver
	places ports.PlacesTransport
	cfg    *config.ResyConfig
	logger *logrus.Logger
}

// NewVenueService creates the venue detail service.
func NewVenueService(venues ports.VenueTransport, photos ports.PhotoResolver, places ports.PlacesTransport, cfg *config.ResyConfig, logger *logrus.Logger) *VenueService {
	return &VenueService{venues: venues, photos: photos, places: places, cfg: cfg, logger: logger}
}

// Details fetches one venue and resolves its display photo.
func (s *VenueService) Details(ctx context.Context, id string) (*venue.Record, error) {
	raw, err := s.venues.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := raw.ToRecord()
	if rec.ID == "" {
		rec.ID = id
	}
	if url, ok := s.photos.Resolve(ctx, id, raw.Name, &raw.Images); ok {
		rec.PhotoURL = url
	}
	return &rec, nil
}

// Links resolves outbound deep links for a venue: the booking-site URL
// derived from the venue name slug, and a maps link found through the paid
// place lookup using the fullest address available.
func (s *VenueService) Links(ctx context.Context, id string) (*venue.Links, error) {
	raw, err := s.venues.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("venue %s has no name", id)
	}

	links := &venue.Links{
		Booking: fmt.Sprintf("%s/%s", s.cfg.BookingBaseURL, venue.BookingSlug(raw.Name)),
	}

	placeID, err := s.places.FindPlace(ctx, placeQuery(raw))
	if err != nil {
		// Maps link is best-effort; the booking link still serves.
		s.logger.WithField("venue", id).WithError(err).Warn("place lookup for maps link failed")
		return links, nil
	}
	if placeID != "" {
		links.GoogleMaps = "https://www.google.com/maps/place/?q=place_id:" + placeID
	}
	return links, nil
}

// placeQuery builds the fullest free-text address for the place lookup. The
// trailing "restaurant" keeps the match away from same-named businesses.
func placeQuery(raw *venue.RawVenue) string {
	parts := []string{raw.Name}
	if raw.Location.Address1 != "" {
		parts = append(parts, raw.Location.Address1)
	}
	if loc := firstNonEmpty(raw.Locality, raw.Location.Locality); loc != "" {
		parts = append(parts, loc)
	}
	if region := firstNonEmpty(raw.Region, raw.Location.Region); region != "" {
		parts = append(parts, region)
	}
	if raw.Location.PostalCode != "" {
		parts = append(parts, raw.Location.PostalCode)
	}
	return strings.Join(parts, ", ") + " restaurant"
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Featured fetches a curated city list and transforms it into records with
// resolved photos.
func (s *VenueService) Featured(ctx context.Context, list string, limit int) ([]venue.Record, error) {
	raws, err := s.venues.CityList(ctx, list, limit)
	if err != nil {
		return nil, err
	}

	records := make([]venue.Record, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		rec := raw.ToRecord()
		if url, ok := s.photos.Resolve(ctx, rec.ID, raw.Name, &raw.Images); ok {
			rec.PhotoURL = url
		}
		records = append(records, rec)
	}
	s.logger.WithFields(logrus.Fields{"list": list, "venues": len(records)}).Info("featured list fetched")
	return records, nil
}
