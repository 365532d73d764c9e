package models

import "time"

// Assignment reasons recorded when a booking is confirmed.
const (
	AssignReasonRequired     = "required"
	AssignReasonRoundRobin   = "round_robin"
	AssignReasonLoadBalanced = "load_balanced"
	AssignReasonManual       = "manual"
)

// Assignment is the permanent record of which provider was assigned to a
// booking and why. Written once at booking-confirmation time; never mutated.
type Assignment struct {
	ID           string    `bson:"id" json:"id"`
	BookingID    string    `bson:"booking_id" json:"booking_id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	Reason       string    `bson:"reason" json:"reason"`
	AssignedAt   time.Time `bson:"assigned_at" json:"assigned_at"`
	BookingStart time.Time `bson:"booking_start" json:"booking_start"`
}
