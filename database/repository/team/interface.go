package teamRepo

import (
	"context"

	"slotwise/models"
)

// TeamRepository provides read access to team (booking-link) membership.
// Membership management itself is handled elsewhere; the availability and
// assignment engines only consume it.
type TeamRepository interface {
	GetMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)
}
