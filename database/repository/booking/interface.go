package bookingRepo

import (
	"context"
	"time"

	"slotwise/models"
)

// BookingRepository provides access to booking records. All interval queries
// are filtered to non-cancelled bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// GetBookedIntervals returns the blocking intervals of a provider's
	// non-cancelled bookings overlapping [from, to). excludeID, when non-empty,
	// drops one booking from the result (reschedule self-exclusion).
	GetBookedIntervals(ctx context.Context, providerID string, from, to time.Time, excludeID string) ([]models.BusyInterval, error)
	// HasConflicting reports whether the provider has any non-cancelled booking
	// overlapping [start, end).
	HasConflicting(ctx context.Context, providerID string, start, end time.Time) (bool, error)
	// CreateWithConflictCheck inserts the booking inside a transaction that
	// re-validates, at commit time, that none of the given providers has a
	// conflicting booking. Returns ErrSlotTaken when the re-check fails.
	CreateWithConflictCheck(ctx context.Context, booking *models.Booking, providerIDs []string) error
	// AddBlockedProviders extends a booking's member list so later conflict
	// and interval queries block the given providers too. Used when the
	// assignment resolver staffs optional members after the booking commits.
	AddBlockedProviders(ctx context.Context, bookingID string, providerIDs []string) error
	Cancel(ctx context.Context, bookingID string) error
}
