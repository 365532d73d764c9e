package models

// BlackoutRange is a provider-declared inclusive date range with zero
// availability. Dates are "YYYY-MM-DD" strings compared lexically, which is
// safe for this format.
type BlackoutRange struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	StartDate  string `bson:"start_date" json:"start_date"`
	EndDate    string `bson:"end_date" json:"end_date"`
	Reason     string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Covers reports whether the given "YYYY-MM-DD" date falls inside the range.
func (b BlackoutRange) Covers(date string) bool {
	return b.StartDate <= date && date <= b.EndDate
}
