package resy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/ports"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.ResyConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		AuthToken: "test-token",
		CitySlug:  "new-york-ny",
		PageSize:  20,
		Timeout:   2 * time.Second,
	}, logrus.New())
}

func TestBuildPayloadQueryFallsBackToCuisine(t *testing.T) {
	filters := &search.Filters{Cuisines: []string{"sushi", "thai"}}
	p := buildPayload("", filters, search.GeoScope{Radius: 100}, 1, 20)
	require.Equal(t, "sushi", p.Query)

	p = buildPayload("lilia", filters, search.GeoScope{Radius: 100}, 1, 20)
	require.Equal(t, "lilia", p.Query)
}

func TestBuildPayloadOrderBy(t *testing.T) {
	p := buildPayload("", &search.Filters{}, search.GeoScope{Latitude: 40.7, Radius: 100}, 1, 20)
	require.Equal(t, "availability", p.OrderBy)

	box := search.GeoScope{BoundingBox: []float64{40.6, -74.1, 40.8, -73.9}}
	p = buildPayload("", &search.Filters{}, box, 1, 20)
	require.Equal(t, "distance", p.OrderBy)
}

func TestBuildPayloadSlotFilter(t *testing.T) {
	withSlots := &search.Filters{AvailableOnly: true, Day: "2026-03-01", PartySize: 2}
	p := buildPayload("", withSlots, search.GeoScope{Radius: 100}, 2, 20)
	require.NotNil(t, p.SlotFilter)
	require.Equal(t, "2026-03-01", p.SlotFilter.Day)
	require.Equal(t, 2, p.SlotFilter.PartySize)
	require.True(t, p.Availability)
	require.Equal(t, 2, p.Page)

	// Without the availability flag the slot filter must stay off even when
	// day and party size are present.
	withoutFlag := &search.Filters{Day: "2026-03-01", PartySize: 2}
	p = buildPayload("", withoutFlag, search.GeoScope{Radius: 100}, 1, 20)
	require.Nil(t, p.SlotFilter)
	require.False(t, p.Availability)
}

func TestSearchPageParsesHitsAndTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/3/venuesearch/search", r.URL.Path)
		require.Contains(t, r.Header.Get("Authorization"), "test-key")
		require.Equal(t, "test-token", r.Header.Get("X-Resy-Auth-Token"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, float64(1), payload["page"])

		_, _ = w.Write([]byte(`{
			"search": {"hits": [
				{"id": {"resy": 42}, "name": "Lilia", "type": "Italian", "price_range_id": 3},
				{"_source": {"id": "77", "name": "Via Carota"}}
			]},
			"meta": {"total": 128}
		}`))
	}))
	defer srv.Close()

	hits, total, err := testClient(srv.URL).SearchPage(context.Background(), "lilia", &search.Filters{}, search.GeoScope{Radius: 100}, 1)
	require.NoError(t, err)
	require.Equal(t, 128, total)
	require.Len(t, hits, 2)
	require.Equal(t, "Lilia", hits[0].Venue().Name)
	require.Equal(t, "42", string(hits[0].Venue().ID))
	require.Equal(t, "Via Carota", hits[1].Venue().Name)
}

func TestSearchPageNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, _, err := testClient(srv.URL).SearchPage(context.Background(), "", &search.Filters{}, search.GeoScope{Radius: 100}, 1)
	require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
}

func TestCalendarParsesScheduledDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/4/venue/calendar", r.URL.Path)
		require.Equal(t, "42", r.URL.Query().Get("venue_id"))
		require.Equal(t, "2", r.URL.Query().Get("num_seats"))
		require.Equal(t, "2026-03-01", r.URL.Query().Get("start_date"))

		_, _ = w.Write([]byte(`{"scheduled": [
			{"date": "2026-03-01", "inventory": {"reservation": "sold-out"}}
		]}`))
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).Calendar(context.Background(), "42", "2026-03-01", 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "sold-out", entries[0].Inventory.Reservation)
}

func TestFindSlotsParsesStartTimes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/4/find", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": {"venues": [{"slots": [
			{"date": {"start": "2026-03-01 18:00:00"}},
			{"date": {"start": "2026-03-01 19:30:00"}}
		]}]}}`))
	}))
	defer srv.Close()

	slots, err := testClient(srv.URL).FindSlots(context.Background(), "42", "2026-03-01", 2)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, 18, slots[0].Start.Hour())
	require.Equal(t, 30, slots[1].Start.Minute())
}

func TestFindSlotsNoVenues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"venues": []}}`))
	}))
	defer srv.Close()

	slots, err := testClient(srv.URL).FindSlots(context.Background(), "42", "2026-03-01", 2)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestCityListPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/3/cities/new-york-ny/list/top_rated", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"results": {"venues": [{"id": "1", "name": "A"}]}}`))
	}))
	defer srv.Close()

	venues, err := testClient(srv.URL).CityList(context.Background(), "top_rated", 10)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	require.Equal(t, "A", venues[0].Name)
}
