package resy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
)

type searchPayload struct {
	Availability bool            `json:"availability"`
	Page         int             `json:"page"`
	PerPage      int             `json:"per_page"`
	Geo          search.GeoScope `json:"geo"`
	Highlight    highlight       `json:"highlight"`
	Query        string          `json:"query"`
	Types        []string        `json:"types"`
	OrderBy      string          `json:"order_by"`
	SlotFilter   *slotFilter     `json:"slot_filter,omitempty"`
}

type highlight struct {
	PreTag  string `json:"pre_tag"`
	PostTag string `json:"post_tag"`
}

type slotFilter struct {
	Day       string `json:"day"`
	PartySize int    `json:"party_size"`
}

type searchResponse struct {
	Search struct {
		Hits []venue.RawHit `json:"hits"`
	} `json:"search"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// buildPayload assembles the upstream search request. With no name query the
// first cuisine stands in, so cuisine-only searches still hit the text index.
// Radius searches order by availability, bounding-box searches by distance.
func buildPayload(query string, filters *search.Filters, geo search.GeoScope, page, perPage int) searchPayload {
	q := query
	if q == "" && len(filters.Cuisines) > 0 {
		q = filters.Cuisines[0]
	}

	orderBy := "distance"
	if geo.IsRadius() {
		orderBy = "availability"
	}

	p := searchPayload{
		Availability: filters.AvailableOnly,
		Page:         page,
		PerPage:      perPage,
		Geo:          geo,
		Highlight:    highlight{PreTag: "<b>", PostTag: "</b>"},
		Query:        q,
		Types:        []string{"venue"},
		OrderBy:      orderBy,
	}
	if filters.AvailableOnly && filters.Day != "" && filters.PartySize > 0 {
		p.SlotFilter = &slotFilter{Day: filters.Day, PartySize: filters.PartySize}
	}
	return p
}

// SearchPage implements ports.SearchTransport.
func (c *Client) SearchPage(ctx context.Context, query string, filters *search.Filters, geo search.GeoScope, page int) ([]venue.RawHit, int, error) {
	payload := buildPayload(query, filters, geo, page, c.cfg.PageSize)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: encoding search payload: %v", ports.ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/3/venuesearch/search", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: building search request: %v", ports.ErrUpstreamUnavailable, err)
	}

	var resp searchResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Search.Hits, resp.Meta.Total, nil
}
