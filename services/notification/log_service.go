package notification

import (
	"context"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// LogNotificationService records notifications to the structured log. Stands
// in for the delivery collaborator in deployments without one configured.
type LogNotificationService struct{}

func (s *LogNotificationService) SendBookingConfirmation(ctx context.Context, booking *models.Booking, assignedProviderIDs []string) error {
	utils.GetLogger().Info("booking confirmation",
		zap.String("bookingID", booking.ID),
		zap.String("clientEmail", booking.ClientEmail),
		zap.Time("start", booking.Start),
		zap.Strings("assignedProviders", assignedProviderIDs))
	return nil
}

func (s *LogNotificationService) SendBookingReminder(ctx context.Context, payload models.ReminderPayload) error {
	utils.GetLogger().Info("booking reminder",
		zap.String("bookingID", payload.BookingID),
		zap.String("clientEmail", payload.ClientEmail),
		zap.Time("start", payload.Start),
		zap.String("title", payload.Title))
	return nil
}
