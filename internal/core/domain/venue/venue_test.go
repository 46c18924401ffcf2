package venue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVenueIDShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want VenueID
	}{
		{"provider object", `{"resy": 123}`, "123"},
		{"other provider key", `{"opentable": "77"}`, "77"},
		{"string", `"abc"`, "abc"},
		{"number", `456`, "456"},
		{"null", `null`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id VenueID
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &id))
			require.Equal(t, tc.want, id)
		})
	}
}

func TestBestURLPrefersSquare400(t *testing.T) {
	ri := ResponsiveImages{
		FileNames: []string{"a.jpg"},
		URLs: map[string]map[string]map[string]string{
			"a.jpg": {
				"16:9": {"800": "https://img/wide"},
				"1:1":  {"400": "https://img/square", "800": "https://img/square-big"},
			},
		},
	}
	url, ok := ri.BestURL()
	require.True(t, ok)
	require.Equal(t, "https://img/square", url)
}

func TestBestURLFallsBackDeterministically(t *testing.T) {
	ri := ResponsiveImages{
		FileNames: []string{"a.jpg"},
		URLs: map[string]map[string]map[string]string{
			"a.jpg": {
				"16:9": {"800": "https://img/wide-800", "600": "https://img/wide-600"},
			},
		},
	}
	url, ok := ri.BestURL()
	require.True(t, ok)
	// Sorted aspect then width order makes the pick stable across runs.
	require.Equal(t, "https://img/wide-600", url)
}

func TestBestURLEmptyPayload(t *testing.T) {
	_, ok := ResponsiveImages{}.BestURL()
	require.False(t, ok)

	_, ok = ResponsiveImages{FileNames: []string{"a.jpg"}}.BestURL()
	require.False(t, ok)
}

func TestBookingSlug(t *testing.T) {
	require.Equal(t, "lilia", BookingSlug("Lilia - Williamsburg"))
	require.Equal(t, "the-grill", BookingSlug("The Grill"))
	require.Equal(t, "salt-and-straw", BookingSlug("Salt & Straw"))
}

func TestMatchesCuisine(t *testing.T) {
	require.True(t, MatchesCuisine("Japanese / Sushi", []string{"sushi"}))
	require.False(t, MatchesCuisine("Steakhouse", []string{"sushi"}))
	require.True(t, MatchesCuisine("anything", nil))
	// Missing data never excludes a venue.
	require.True(t, MatchesCuisine("", []string{"sushi"}))
}

func TestMatchesPrice(t *testing.T) {
	require.True(t, MatchesPrice(2, []int{2, 3}))
	require.False(t, MatchesPrice(4, []int{2, 3}))
	require.True(t, MatchesPrice(4, nil))
}

func TestRawHitPrefersNestedSource(t *testing.T) {
	nested := &RawVenue{Name: "nested"}
	h := RawHit{Source: nested, RawVenue: RawVenue{Name: "inline"}}
	require.Equal(t, "nested", h.Venue().Name)

	h = RawHit{RawVenue: RawVenue{Name: "inline"}}
	require.Equal(t, "inline", h.Venue().Name)
}

func TestToRecord(t *testing.T) {
	v := RawVenue{
		ID:           "42",
		Name:         "Via Carota",
		Type:         "Italian",
		PriceRangeID: 3,
		Location: RawLocation{
			Address1:     "51 Grove St",
			Neighborhood: "West Village",
			Locality:     "New York",
			Region:       "NY",
		},
		Geo:   &RawGeo{Lat: 40.73, Lng: -74.0},
		Rater: []Rater{{Score: 4.8}},
	}

	rec := v.ToRecord()
	require.Equal(t, "42", rec.ID)
	require.Equal(t, 3, rec.PriceRange)
	require.Equal(t, "51 Grove St, New York, NY", rec.Location.Address)
	require.NotNil(t, rec.Latitude)
	require.Equal(t, 40.73, *rec.Latitude)
	require.NotNil(t, rec.Rating)
	require.Equal(t, 4.8, *rec.Rating)
}

func TestToRecordTopLevelLocalityWins(t *testing.T) {
	v := RawVenue{
		ID:       "1",
		Name:     "x",
		Locality: "Brooklyn",
		Location: RawLocation{Locality: "New York", Region: "NY"},
	}
	rec := v.ToRecord()
	require.Equal(t, "Brooklyn", rec.Location.Locality)
	require.Equal(t, "NY", rec.Location.Region)
	require.Nil(t, rec.Latitude)
	require.Nil(t, rec.Rating)
}

func TestPriceFallsBackToPriceRange(t *testing.T) {
	require.Equal(t, 2, (&RawVenue{PriceRange: 2}).Price())
	require.Equal(t, 3, (&RawVenue{PriceRangeID: 3, PriceRange: 2}).Price())
}
