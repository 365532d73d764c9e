package models

import "time"

// Slot represents a fixed-duration candidate appointment window [Start, End).
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// BusyInterval is any time range that blocks a slot, sourced from internal
// bookings or an external calendar. Half-open: [Start, End).
type BusyInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// ServiceConfig carries the slot sizing parameters of the booked service.
type ServiceConfig struct {
	DurationMinutes int `bson:"duration_minutes" json:"duration_minutes"`
	BufferMinutes   int `bson:"buffer_minutes" json:"buffer_minutes"`
}
