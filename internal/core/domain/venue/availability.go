package venue

import "time"

// AvailabilityStatus explains why a venue has no bookable times on a day.
// The zero value means "no status": the venue is open and Times carries the
// bookable slots.
type AvailabilityStatus string

const (
	StatusNone        AvailabilityStatus = ""
	StatusClosed      AvailabilityStatus = "Closed"
	StatusSoldOut     AvailabilityStatus = "Sold out"
	StatusNotReleased AvailabilityStatus = "Not released yet"
	StatusUnreachable AvailabilityStatus = "Unable to fetch"
)

// AvailabilityResult is the outcome of classifying one venue/day/party-size.
// Invariant on returned values: either Times is non-empty and Status is
// StatusNone, or Times is empty and Status is set.
type AvailabilityResult struct {
	Times  []string           `json:"times"`
	Status AvailabilityStatus `json:"status,omitempty"`
}

// HasTimes reports whether the venue is open with bookable slots.
func (r AvailabilityResult) HasTimes() bool { return len(r.Times) > 0 }

// CalendarEntry is one day in the upstream reservation calendar.
type CalendarEntry struct {
	Date      string `json:"date"`
	Inventory struct {
		Reservation string `json:"reservation"`
	} `json:"inventory"`
}

// Upstream reservation statuses carried in calendar inventory.
const (
	ReservationClosed       = "closed"
	ReservationSoldOut      = "sold-out"
	ReservationNotAvailable = "not available"
)

// Slot is one bookable reservation slot.
type Slot struct {
	Start time.Time
}
