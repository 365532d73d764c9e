package calendar

import (
	"context"
	"time"

	"slotwise/models"
)

// BusySource retrieves externally-synced busy intervals for a provider.
// Implementations are only consulted when the provider has an active calendar
// connection; a fetch failure degrades to "no busy data" at the caller.
type BusySource interface {
	BusyIntervals(ctx context.Context, provider *models.Provider, from, to time.Time) ([]models.BusyInterval, error)
}
