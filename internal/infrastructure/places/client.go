// Package places implements the paid photo/place transport over the Google
// Places web API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/ports"
)

// Client implements ports.PlacesTransport. A missing API key disables the
// client: every lookup reports "nothing found" without going to the network.
type Client struct {
	cfg    *config.PlacesConfig
	http   *http.Client
	logger *logrus.Logger
}

// NewClient creates a places client.
func NewClient(cfg *config.PlacesConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.cfg.APIKey)
	u := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: building places request: %v", ports.ErrUpstreamUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: places %s: %v", ports.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: places %s returned status %d", ports.ErrUpstreamUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding places response: %v", ports.ErrUpstreamUnavailable, err)
	}
	return nil
}

type textSearchResponse struct {
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// SearchPhoto implements ports.PlacesTransport. It takes the first result's
// first photo only, to keep the paid lookup cheap.
func (c *Client) SearchPhoto(ctx context.Context, query string) (*ports.PlacePhoto, error) {
	if !c.Enabled() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)

	var resp textSearchResponse
	if err := c.getJSON(ctx, "/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	place := resp.Results[0]
	if len(place.Photos) == 0 || place.Photos[0].PhotoReference == "" {
		return nil, nil
	}

	photoURL := fmt.Sprintf("%s/place/photo?maxwidth=800&photo_reference=%s&key=%s",
		c.cfg.BaseURL, place.Photos[0].PhotoReference, c.cfg.APIKey)

	addr := place.FormattedAddress
	if addr == "" {
		addr = "N/A"
	}
	return &ports.PlacePhoto{
		URL:          photoURL,
		PlaceName:    place.Name,
		PlaceAddress: addr,
	}, nil
}

type findPlaceResponse struct {
	Status     string `json:"status"`
	Candidates []struct {
		PlaceID string `json:"place_id"`
	} `json:"candidates"`
}

// FindPlace implements ports.PlacesTransport, resolving free text to a place
// id for map deep links. An empty id means no candidate matched.
func (c *Client) FindPlace(ctx context.Context, input string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}

	params := url.Values{}
	params.Set("input", input)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id,name")

	var resp findPlaceResponse
	if err := c.getJSON(ctx, "/place/findplacefromtext/json", params, &resp); err != nil {
		return "", err
	}
	if resp.Status != "OK" || len(resp.Candidates) == 0 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"status": resp.Status}).Debug("no place candidates for input")
		}
		return "", nil
	}
	return resp.Candidates[0].PlaceID, nil
}

// imageBytesLimit caps a proxied image download.
const imageBytesLimit = 8 << 20

// FetchImage implements ports.ImageFetcher. It follows redirects (the photo
// endpoint answers with one) and returns the final bytes and content type.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: building image request: %v", ports.ErrUpstreamUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetching image: %v", ports.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: image fetch returned status %d", ports.ErrUpstreamUnavailable, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, imageBytesLimit))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading image body: %v", ports.ErrUpstreamUnavailable, err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}
