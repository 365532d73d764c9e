package models

// Assignment modes for flexible team bookings.
const (
	ModeRoundRobin   = "round_robin"
	ModeLoadBalanced = "load_balanced"
)

// TeamMember is a provider's membership in a team (booking link / pool).
// Read-only input to the availability and assignment engines.
type TeamMember struct {
	TeamID            string `bson:"team_id" json:"team_id"`
	ProviderID        string `bson:"provider_id" json:"provider_id"`
	IsRequired        bool   `bson:"is_required" json:"is_required"`
	Priority          int    `bson:"priority" json:"priority"`
	MaxBookingsPerDay *int   `bson:"max_bookings_per_day,omitempty" json:"max_bookings_per_day,omitempty"`
}
