package notification

import (
	"context"

	"slotwise/models"
)

// Service defines the notifications the booking flow emits. Actual delivery
// (email, push) is an external collaborator; implementations here only hand
// the message off.
type Service interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, assignedProviderIDs []string) error
	SendBookingReminder(ctx context.Context, payload models.ReminderPayload) error
}
