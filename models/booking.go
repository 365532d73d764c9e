package models

import "time"

// Booking status values. Anything other than cancelled blocks the interval.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed or pending booking record. MemberIDs holds
// every provider the booking blocks: the required members at creation time,
// extended with the optional members the assignment resolver staffs. All
// conflict and interval queries match against it, so a team booking blocks
// each committed member, not just the primary provider.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	ProviderID  string        `bson:"provider_id" json:"provider_id"`
	MemberIDs   []string      `bson:"member_ids" json:"member_ids"`
	TeamID      string        `bson:"team_id,omitempty" json:"team_id,omitempty"`
	ClientEmail string        `bson:"client_email" json:"client_email"`
	Start       time.Time     `bson:"start" json:"start"`
	End         time.Time     `bson:"end" json:"end"`
	Status      string        `bson:"status" json:"status"`
	Service     ServiceConfig `bson:"service" json:"service"`
	MinRequired int           `bson:"min_required,omitempty" json:"min_required,omitempty"`
	Mode        string        `bson:"mode,omitempty" json:"mode,omitempty"`
	Notes       string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// Interval returns the booking's blocking interval.
func (b Booking) Interval() BusyInterval {
	return BusyInterval{Start: b.Start, End: b.End}
}
