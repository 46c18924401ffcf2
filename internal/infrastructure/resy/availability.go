package resy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
)

const slotTimeLayout = "2006-01-02 15:04:05"

type calendarResponse struct {
	Scheduled []venue.CalendarEntry `json:"scheduled"`
}

// Calendar implements ports.AvailabilityTransport. It returns the scheduled
// reservation calendar for the single requested day.
func (c *Client) Calendar(ctx context.Context, venueID, day string, partySize int) ([]venue.CalendarEntry, error) {
	params := url.Values{}
	params.Set("venue_id", venueID)
	params.Set("num_seats", strconv.Itoa(partySize))
	params.Set("start_date", day)
	params.Set("end_date", day)

	var resp calendarResponse
	if err := c.getJSON(ctx, "/4/venue/calendar", params, &resp); err != nil {
		return nil, err
	}
	return resp.Scheduled, nil
}

type findResponse struct {
	Results struct {
		Venues []struct {
			Slots []struct {
				Date struct {
					Start string `json:"start"`
				} `json:"date"`
			} `json:"slots"`
		} `json:"venues"`
	} `json:"results"`
}

// FindSlots implements ports.AvailabilityTransport. Slots come back in the
// upstream's chronological order.
func (c *Client) FindSlots(ctx context.Context, venueID, day string, partySize int) ([]venue.Slot, error) {
	params := url.Values{}
	params.Set("venue_id", venueID)
	params.Set("day", day)
	params.Set("party_size", strconv.Itoa(partySize))
	params.Set("lat", "0")
	params.Set("long", "0")

	var resp findResponse
	if err := c.getJSON(ctx, "/4/find", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results.Venues) == 0 {
		return nil, nil
	}

	raw := resp.Results.Venues[0].Slots
	slots := make([]venue.Slot, 0, len(raw))
	for _, s := range raw {
		start, err := time.Parse(slotTimeLayout, s.Date.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: slot start %q: %v", ports.ErrUpstreamUnavailable, s.Date.Start, err)
		}
		slots = append(slots, venue.Slot{Start: start})
	}
	return slots, nil
}
