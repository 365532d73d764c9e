package models

// AvailabilityRule is a provider's recurring weekly working-hour window.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
// StartTime/EndTime are provider-local "HH:MM" strings. Multiple rules per day
// are allowed and treated additively.
type AvailabilityRule struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	DayOfWeek  int    `bson:"day_of_week" json:"day_of_week"`
	StartTime  string `bson:"start_time" json:"start_time"`
	EndTime    string `bson:"end_time" json:"end_time"`
	Active     bool   `bson:"active" json:"active"`
}
