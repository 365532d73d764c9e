package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleBusySource fetches busy intervals through the Google Calendar
// FreeBusy API, using the OAuth2 token stored on the provider's calendar
// connection. Token exchange happens outside this service; we only consume
// the stored token.
type GoogleBusySource struct {
	oauthConfig *oauth2.Config
}

// NewGoogleBusySource builds a busy source from the configured OAuth client.
// Returns nil if no Google client is configured, which callers treat as
// "external calendars disabled".
func NewGoogleBusySource() *GoogleBusySource {
	clientID := config.AppConfig.GoogleClientID
	clientSecret := config.AppConfig.GoogleClientSecret
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &GoogleBusySource{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{gcal.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *GoogleBusySource) BusyIntervals(ctx context.Context, provider *models.Provider, from, to time.Time) ([]models.BusyInterval, error) {
	if !provider.Calendar.Active || provider.Calendar.Token == "" {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(provider.Calendar.Token), &token); err != nil {
		return nil, fmt.Errorf("invalid calendar token for provider %s: %w", provider.ID, err)
	}

	client := s.oauthConfig.Client(ctx, &token)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	calendarID := provider.Calendar.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}
	resp, err := srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed for provider %s: %w", provider.ID, err)
	}

	var intervals []models.BusyInterval
	if cal, ok := resp.Calendars[calendarID]; ok {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			intervals = append(intervals, models.BusyInterval{Start: start, End: end})
		}
	}
	return intervals, nil
}
