package resy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tablescout/tablescout/internal/core/domain/venue"
)

// Venue implements ports.VenueTransport for single-venue detail lookups.
func (c *Client) Venue(ctx context.Context, id string) (*venue.RawVenue, error) {
	params := url.Values{}
	params.Set("id", id)

	var v venue.RawVenue
	if err := c.getJSON(ctx, "/3/venue", params, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

type cityListResponse struct {
	Results struct {
		Venues []venue.RawVenue `json:"venues"`
	} `json:"results"`
}

// CityList fetches a curated city list ("climbing", "top-rated").
func (c *Client) CityList(ctx context.Context, list string, limit int) ([]venue.RawVenue, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/3/cities/%s/list/%s", c.cfg.CitySlug, list)

	var resp cityListResponse
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.Results.Venues, nil
}
