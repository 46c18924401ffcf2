package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
)

type venueTransportMock struct {
	venueFn    func(ctx context.Context, id string) (*venue.RawVenue, error)
	cityListFn func(ctx context.Context, list string, limit int) ([]venue.RawVenue, error)
}

func (m *venueTransportMock) Venue(ctx context.Context, id string) (*venue.RawVenue, error) {
	if m.venueFn != nil {
		return m.venueFn(ctx, id)
	}
	return &venue.RawVenue{}, nil
}

func (m *venueTransportMock) CityList(ctx context.Context, list string, limit int) ([]venue.RawVenue, error) {
	if m.cityListFn != nil {
		return m.cityListFn(ctx, list, limit)
	}
	return nil, nil
}

type photoResolverMock struct {
	resolveFn func(ctx context.Context, venueID, venueName string, images *venue.ResponsiveImages) (string, bool)
}

func (m *photoResolverMock) Resolve(ctx context.Context, venueID, venueName string, images *venue.ResponsiveImages) (string, bool) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, venueID, venueName, images)
	}
	return "", false
}

func (m *photoResolverMock) CachedRecord(context.Context, string, string) (*venue.PhotoRecord, bool) {
	return nil, false
}

func resyTestConfig() *config.ResyConfig {
	return &config.ResyConfig{BookingBaseURL: "https://resy.com/cities/ny"}
}

func TestDetailsResolvesPhoto(t *testing.T) {
	transport := &venueTransportMock{venueFn: func(_ context.Context, id string) (*venue.RawVenue, error) {
		return &venue.RawVenue{ID: venue.VenueID(id), Name: "Lilia", Type: "Italian"}, nil
	}}
	photos := &photoResolverMock{resolveFn: func(context.Context, string, string, *venue.ResponsiveImages) (string, bool) {
		return "https://img/lilia", true
	}}

	svc := NewVenueService(transport, photos, &placesMock{}, resyTestConfig(), logrus.New())
	rec, err := svc.Details(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, "42", rec.ID)
	require.Equal(t, "https://img/lilia", rec.PhotoURL)
}

func TestDetailsTransportError(t *testing.T) {
	boom := errors.New("boom")
	transport := &venueTransportMock{venueFn: func(context.Context, string) (*venue.RawVenue, error) {
		return nil, boom
	}}

	svc := NewVenueService(transport, &photoResolverMock{}, &placesMock{}, resyTestConfig(), logrus.New())
	_, err := svc.Details(context.Background(), "42")
	require.ErrorIs(t, err, boom)
}

func TestLinksBuildsBookingAndMaps(t *testing.T) {
	transport := &venueTransportMock{venueFn: func(context.Context, string) (*venue.RawVenue, error) {
		return &venue.RawVenue{
			ID:   "42",
			Name: "Lilia - Williamsburg",
			Location: venue.RawLocation{
				Address1:   "567 Union Ave",
				Locality:   "Brooklyn",
				Region:     "NY",
				PostalCode: "11211",
			},
		}, nil
	}}
	places := &placesMock{findPlaceFn: func(_ context.Context, input string) (string, error) {
		require.Equal(t, "Lilia - Williamsburg, 567 Union Ave, Brooklyn, NY, 11211 restaurant", input)
		return "place123", nil
	}}

	svc := NewVenueService(transport, &photoResolverMock{}, places, resyTestConfig(), logrus.New())
	links, err := svc.Links(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, "https://resy.com/cities/ny/lilia", links.Booking)
	require.Equal(t, "https://www.google.com/maps/place/?q=place_id:place123", links.GoogleMaps)
}

func TestLinksMapsLookupIsBestEffort(t *testing.T) {
	transport := &venueTransportMock{venueFn: func(context.Context, string) (*venue.RawVenue, error) {
		return &venue.RawVenue{ID: "42", Name: "Lilia"}, nil
	}}
	places := &placesMock{findPlaceFn: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}}

	svc := NewVenueService(transport, &photoResolverMock{}, places, resyTestConfig(), logrus.New())
	links, err := svc.Links(context.Background(), "42")
	require.NoError(t, err, "a failed maps lookup must not fail the links call")
	require.Equal(t, "https://resy.com/cities/ny/lilia", links.Booking)
	require.Empty(t, links.GoogleMaps)
}

func TestFeaturedResolvesPhotosPerVenue(t *testing.T) {
	transport := &venueTransportMock{cityListFn: func(_ context.Context, list string, limit int) ([]venue.RawVenue, error) {
		require.Equal(t, "top_rated", list)
		require.Equal(t, 5, limit)
		return []venue.RawVenue{
			{ID: "1", Name: "A"},
			{ID: "2", Name: "B"},
		}, nil
	}}
	photos := &photoResolverMock{resolveFn: func(_ context.Context, venueID, _ string, _ *venue.ResponsiveImages) (string, bool) {
		if venueID == "1" {
			return "https://img/a", true
		}
		return "", false
	}}

	svc := NewVenueService(transport, photos, &placesMock{}, resyTestConfig(), logrus.New())
	recs, err := svc.Featured(context.Background(), "top_rated", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "https://img/a", recs[0].PhotoURL)
	require.Empty(t, recs[1].PhotoURL, "a missing photo leaves the field absent")
}
