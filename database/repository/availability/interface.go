package availabilityRepo

import (
	"context"

	"slotwise/models"
)

// AvailabilityRepository provides access to a provider's working-hour rules
// and blackout date ranges.
type AvailabilityRepository interface {
	// GetRules returns a provider's availability rules. With activeOnly set,
	// inactive rules are filtered out at the query level.
	GetRules(ctx context.Context, providerID string, activeOnly bool) ([]models.AvailabilityRule, error)
	// ReplaceRules swaps a provider's full rule set.
	ReplaceRules(ctx context.Context, providerID string, rules []models.AvailabilityRule) error
	// GetBlackouts returns all blackout ranges declared by a provider.
	GetBlackouts(ctx context.Context, providerID string) ([]models.BlackoutRange, error)
	// ReplaceBlackouts swaps a provider's full blackout list.
	ReplaceBlackouts(ctx context.Context, providerID string, ranges []models.BlackoutRange) error
}
