package models

import "time"

// ReminderPayload is the task payload queued at booking confirmation and
// consumed by the reminder worker.
type ReminderPayload struct {
	BookingID   string    `json:"bookingId"`
	ClientEmail string    `json:"clientEmail"`
	ProviderIDs []string  `json:"providerIds"`
	Start       time.Time `json:"start"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
}
