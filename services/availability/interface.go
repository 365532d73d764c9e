package availability

import (
	"context"
	"time"

	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
	"slotwise/services/calendar"
)

// SlotQuery describes one slot-generation request. Now is threaded explicitly
// so the engine stays pure and testable; a zero Now means the wall clock.
type SlotQuery struct {
	MemberIDs         []string
	RequiredMemberIDs []string
	Date              string // "YYYY-MM-DD" in the query timezone
	Service           models.ServiceConfig
	Timezone          string
	MinRequired       int // >= 1 enables flexible quorum mode; 0 = strict intersection
	ExcludeBookingID  string
	Now               time.Time
}

// DateQuery describes one available-date enumeration request.
type DateQuery struct {
	MemberIDs         []string
	RequiredMemberIDs []string
	Timezone          string
	DaysAhead         int // 0 = engine default
	Now               time.Time
}

// Engine computes bookable slots and dates for one provider or a team.
type Engine interface {
	// ListSlotsForDate returns the full slot list for the date, including
	// unavailable slots, ascending by start time. The single-provider case is
	// a one-element MemberIDs.
	ListSlotsForDate(ctx context.Context, q SlotQuery) ([]models.Slot, error)
	// ListAvailableDates returns the dates within the lookahead horizon whose
	// day-of-week coverage and blackouts permit availability. A cheap
	// pre-filter: a returned date can still yield zero slots once bookings
	// and busy times are factored in by ListSlotsForDate.
	ListAvailableDates(ctx context.Context, q DateQuery) ([]string, error)
}

// DefaultAvailabilityEngine is the production engine.
type DefaultAvailabilityEngine struct {
	Providers providerRepo.ProviderRepository
	Rules     availabilityRepo.AvailabilityRepository
	Bookings  bookingRepo.BookingRepository
	Busy      calendar.BusySource

	// MinimumNoticeHours is the lead-time policy below which slots are
	// flagged unavailable.
	MinimumNoticeHours int
	// DefaultDaysAhead is the date-enumeration horizon used when a query
	// does not set one.
	DefaultDaysAhead int
}
