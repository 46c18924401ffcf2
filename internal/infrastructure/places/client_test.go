package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/ports"
)

func testPlacesClient(baseURL, apiKey string) *Client {
	return NewClient(&config.PlacesConfig{BaseURL: baseURL, APIKey: apiKey, City: "New York"}, logrus.New())
}

func TestDisabledClientSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("a keyless client must never reach the network")
	}))
	defer srv.Close()

	c := testPlacesClient(srv.URL, "")

	photo, err := c.SearchPhoto(context.Background(), "Lilia restaurant New York")
	require.NoError(t, err)
	require.Nil(t, photo)

	id, err := c.FindPlace(context.Background(), "Lilia")
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestSearchPhotoFirstResultFirstPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/textsearch/json", r.URL.Path)
		require.Equal(t, "Lilia restaurant New York", r.URL.Query().Get("query"))
		require.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"results": [
			{"name": "Lilia", "formatted_address": "567 Union Ave",
			 "photos": [{"photo_reference": "ref1"}, {"photo_reference": "ref2"}]},
			{"name": "Other", "photos": [{"photo_reference": "other"}]}
		]}`))
	}))
	defer srv.Close()

	photo, err := testPlacesClient(srv.URL, "k").SearchPhoto(context.Background(), "Lilia restaurant New York")
	require.NoError(t, err)
	require.NotNil(t, photo)
	require.Equal(t, "Lilia", photo.PlaceName)
	require.Equal(t, "567 Union Ave", photo.PlaceAddress)
	require.Contains(t, photo.URL, "maxwidth=800")
	require.Contains(t, photo.URL, "photo_reference=ref1")
}

func TestSearchPhotoNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	photo, err := testPlacesClient(srv.URL, "k").SearchPhoto(context.Background(), "nowhere")
	require.NoError(t, err)
	require.Nil(t, photo)
}

func TestSearchPhotoPlaceWithoutPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"name": "Lilia", "photos": []}]}`))
	}))
	defer srv.Close()

	photo, err := testPlacesClient(srv.URL, "k").SearchPhoto(context.Background(), "Lilia")
	require.NoError(t, err)
	require.Nil(t, photo)
}

func TestFindPlace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/findplacefromtext/json", r.URL.Path)
		require.Equal(t, "textquery", r.URL.Query().Get("inputtype"))
		_, _ = w.Write([]byte(`{"status": "OK", "candidates": [{"place_id": "place123"}]}`))
	}))
	defer srv.Close()

	id, err := testPlacesClient(srv.URL, "k").FindPlace(context.Background(), "Lilia, 567 Union Ave restaurant")
	require.NoError(t, err)
	require.Equal(t, "place123", id)
}

func TestFindPlaceZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "candidates": []}`))
	}))
	defer srv.Close()

	id, err := testPlacesClient(srv.URL, "k").FindPlace(context.Background(), "nowhere")
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	data, contentType, err := testPlacesClient(srv.URL, "k").FetchImage(context.Background(), srv.URL+"/img")
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestFetchImageNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := testPlacesClient(srv.URL, "k").FetchImage(context.Background(), srv.URL+"/img")
	require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
}
