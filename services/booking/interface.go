package booking

import (
	"context"
	"time"

	"slotwise/models"
)

// CreateRequest describes one booking to create and confirm. A single-provider
// booking sets ProviderID; a team booking sets TeamID plus the member lists
// and, for flexible quorum, MinRequired and Mode.
type CreateRequest struct {
	ProviderID        string
	TeamID            string
	MemberIDs         []string
	RequiredMemberIDs []string
	ClientEmail       string
	Start             time.Time
	Service           models.ServiceConfig
	Timezone          string
	MinRequired       int
	Mode              string
	Notes             string
}

// Service is the booking flow consumed by the HTTP layer.
type Service interface {
	// CreateBooking re-validates the requested slot, persists the booking
	// with a commit-time conflict check, runs team assignment for flexible
	// bookings, and schedules the reminder. Returns the booking and the
	// assigned provider ids.
	CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, []string, error)
	CancelBooking(ctx context.Context, bookingID string) error
}
