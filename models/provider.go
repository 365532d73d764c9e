package models

import "time"

// CalendarConnection holds a provider's external calendar link. Token is the
// serialized OAuth2 token obtained out-of-band; the token exchange flow itself
// lives outside this service.
type CalendarConnection struct {
	Active     bool      `bson:"active" json:"active"`
	CalendarID string    `bson:"calendar_id" json:"calendar_id"`
	Token      string    `bson:"token,omitempty" json:"-"`
	SyncedAt   time.Time `bson:"synced_at,omitempty" json:"synced_at,omitempty"`
}

// Provider is a service professional with availability rules and bookings.
type Provider struct {
	ID        string             `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Timezone  string             `bson:"timezone" json:"timezone"`
	Service   ServiceConfig      `bson:"service" json:"service"`
	Calendar  CalendarConnection `bson:"calendar,omitempty" json:"calendar"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
