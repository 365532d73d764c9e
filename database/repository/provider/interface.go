package providerRepo

import (
	"context"

	"slotwise/models"
)

// ProviderRepository provides access to provider records.
type ProviderRepository interface {
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	GetByIDs(ctx context.Context, providerIDs []string) ([]models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error
	UpdateCalendar(ctx context.Context, providerID string, conn models.CalendarConnection) error
}
