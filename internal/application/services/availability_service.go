package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
	"golang.org/x/time/rate"
)

const clockLayout = "15:04"

// AvailabilityService classifies one venue/day/party-size into bookable
// times or the reason there are none. A shared token bucket paces calls
// across all enrichment workers as a courtesy to the upstream's rate limits.
type AvailabilityService struct {
	transport ports.AvailabilityTransport
	limiter   *rate.Limiter
	slotLimit int
	logger    *logrus.Logger
}

// NewAvailabilityService creates the classifier. The slot limit is clamped
// to at least one; an open day must always surface at least one time.
func NewAvailabilityService(transport ports.AvailabilityTransport, cfg *config.SearchConfig, logger *logrus.Logger) *AvailabilityService {
	slotLimit := cfg.SlotLimit
	if slotLimit < 1 {
		slotLimit = 1
	}
	return &AvailabilityService{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Every(cfg.ClassifyInterval), 1),
		slotLimit: slotLimit,
		logger:    logger,
	}
}

// Classify implements ports.AvailabilityClassifier. Transport errors are
// returned as-is; the enrichment scheduler downgrades them per venue.
func (s *AvailabilityService) Classify(ctx context.Context, venueID, day string, partySize int, desiredTime string) (venue.AvailabilityResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return venue.AvailabilityResult{}, err
	}

	// Phase 1: the reservation calendar decides whether the day is even
	// bookable before we pay for a slot query.
	scheduled, err := s.transport.Calendar(ctx, venueID, day, partySize)
	if err != nil {
		// An unreadable calendar is terminal for the venue; slots are never
		// fetched without a calendar verdict for the day.
		classificationsTotal.WithLabelValues("error").Inc()
		return venue.AvailabilityResult{}, err
	}

	entry, found := findDay(scheduled, day)
	if !found {
		classificationsTotal.WithLabelValues("not_released").Inc()
		return venue.AvailabilityResult{Status: venue.StatusNotReleased}, nil
	}
	switch entry.Inventory.Reservation {
	case venue.ReservationClosed:
		classificationsTotal.WithLabelValues("closed").Inc()
		return venue.AvailabilityResult{Status: venue.StatusClosed}, nil
	case venue.ReservationSoldOut, venue.ReservationNotAvailable:
		classificationsTotal.WithLabelValues("sold_out").Inc()
		return venue.AvailabilityResult{Status: venue.StatusSoldOut}, nil
	}

	// Phase 2: fetch the actual slot inventory.
	slots, err := s.transport.FindSlots(ctx, venueID, day, partySize)
	if err != nil {
		classificationsTotal.WithLabelValues("error").Inc()
		return venue.AvailabilityResult{}, err
	}
	if len(slots) == 0 {
		// Calendar said open but there is no inventory left.
		classificationsTotal.WithLabelValues("sold_out").Inc()
		return venue.AvailabilityResult{Status: venue.StatusSoldOut}, nil
	}

	times := s.rankSlots(slots, desiredTime)
	classificationsTotal.WithLabelValues("open").Inc()
	return venue.AvailabilityResult{Times: times}, nil
}

// rankSlots selects and formats the displayed times: the slotLimit closest
// to the desired time (stable on ties, preserving upstream order), re-sorted
// chronologically for display. Without a desired time the upstream's
// chronological order already holds and the first slotLimit are taken.
func (s *AvailabilityService) rankSlots(slots []venue.Slot, desiredTime string) []string {
	ranked := append([]venue.Slot(nil), slots...)

	if desiredTime != "" {
		if want, err := time.Parse(clockLayout, desiredTime); err == nil {
			target := want.Hour()*60 + want.Minute()
			sort.SliceStable(ranked, func(i, j int) bool {
				return minuteDistance(ranked[i].Start, target) < minuteDistance(ranked[j].Start, target)
			})
		} else if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"desired_time": desiredTime}).Warn("ignoring unparseable desired time")
		}
	}

	if len(ranked) > s.slotLimit {
		ranked = ranked[:s.slotLimit]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Start.Before(ranked[j].Start) })

	times := make([]string, len(ranked))
	for i, slot := range ranked {
		times[i] = slot.Start.Format("3:04 PM")
	}
	return times
}

func minuteDistance(t time.Time, targetMinutes int) int {
	m := t.Hour()*60 + t.Minute()
	if m > targetMinutes {
		return m - targetMinutes
	}
	return targetMinutes - m
}

func findDay(scheduled []venue.CalendarEntry, day string) (venue.CalendarEntry, bool) {
	for _, e := range scheduled {
		if e.Date == day {
			return e, true
		}
	}
	return venue.CalendarEntry{}, false
}
