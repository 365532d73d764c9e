package availability

import (
	"context"
	"sync"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// memberData is the per-member bundle of scheduling inputs, fetched fresh for
// every computation. Never cached: conflicts can change between requests.
type memberData struct {
	ProviderID string
	Provider   *models.Provider
	Rules      []models.AvailabilityRule
	Bookings   []models.BusyInterval
	Blackouts  []models.BlackoutRange
	Busy       []models.BusyInterval
}

// fetchMemberData gathers rules, bookings, blackouts and external busy times
// for every member concurrently and joins the results keyed by provider id,
// so completion order never affects output. A failed fetch is logged and
// degrades to empty data for that member: a required member with no data
// yields an empty day downstream, an optional member simply drops out of the
// pool (fail closed per member).
func (e *DefaultAvailabilityEngine) fetchMemberData(
	ctx context.Context,
	memberIDs []string,
	dayStart, dayEnd time.Time,
	excludeBookingID string,
) map[string]*memberData {
	logger := utils.GetLogger()

	resultsCh := make(chan *memberData, len(memberIDs))
	var wg sync.WaitGroup

	for _, id := range memberIDs {
		wg.Add(1)
		go func(providerID string) {
			defer wg.Done()
			resultsCh <- e.fetchOneMember(ctx, logger, providerID, dayStart, dayEnd, excludeBookingID)
		}(id)
	}

	wg.Wait()
	close(resultsCh)

	byID := make(map[string]*memberData, len(memberIDs))
	for md := range resultsCh {
		byID[md.ProviderID] = md
	}
	return byID
}

func (e *DefaultAvailabilityEngine) fetchOneMember(
	ctx context.Context,
	logger *zap.Logger,
	providerID string,
	dayStart, dayEnd time.Time,
	excludeBookingID string,
) *memberData {
	md := &memberData{ProviderID: providerID}

	provider, err := e.Providers.GetByID(ctx, providerID)
	if err != nil {
		logger.Warn("fetchMemberData: provider lookup failed, treating member as having no availability",
			zap.String("providerID", providerID), zap.Error(err))
		return md
	}
	md.Provider = provider

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		rules, err := e.Rules.GetRules(ctx, providerID, true)
		if err != nil {
			logger.Warn("fetchMemberData: rules fetch failed",
				zap.String("providerID", providerID), zap.Error(err))
			return
		}
		md.Rules = rules
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bookings, err := e.Bookings.GetBookedIntervals(ctx, providerID, dayStart, dayEnd, excludeBookingID)
		if err != nil {
			logger.Warn("fetchMemberData: bookings fetch failed",
				zap.String("providerID", providerID), zap.Error(err))
			return
		}
		md.Bookings = bookings
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		blackouts, err := e.Rules.GetBlackouts(ctx, providerID)
		if err != nil {
			logger.Warn("fetchMemberData: blackouts fetch failed",
				zap.String("providerID", providerID), zap.Error(err))
			return
		}
		md.Blackouts = blackouts
	}()

	if e.Busy != nil && provider.Calendar.Active {
		wg.Add(1)
		go func() {
			defer wg.Done()
			busy, err := e.Busy.BusyIntervals(ctx, provider, dayStart, dayEnd)
			if err != nil {
				logger.Warn("fetchMemberData: external busy fetch failed",
					zap.String("providerID", providerID), zap.Error(err))
				return
			}
			md.Busy = busy
		}()
	}

	wg.Wait()
	return md
}
