package availability

import (
	"context"
	"sync"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// dateFilterData is the cut-down member bundle date enumeration needs: rule
// day-of-week coverage and blackouts, no bookings or busy times.
type dateFilterData struct {
	ProviderID string
	Weekdays   map[int]bool
	Blackouts  []models.BlackoutRange
}

// ListAvailableDates walks the lookahead horizon and keeps each date whose
// day of week is covered by every required member and which no required
// member has blacked out. Deliberately cheap: bookings and external busy
// times are not consulted, so a returned date may still produce zero slots --
// callers confirm with ListSlotsForDate once a date is picked.
func (e *DefaultAvailabilityEngine) ListAvailableDates(ctx context.Context, q DateQuery) ([]string, error) {
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, NewInvalidInput("timezone", "unknown timezone "+q.Timezone)
	}
	if q.DaysAhead < 0 {
		return nil, NewInvalidInput("days_ahead", "must not be negative")
	}
	daysAhead := q.DaysAhead
	if daysAhead == 0 {
		daysAhead = e.DefaultDaysAhead
	}
	if daysAhead == 0 {
		daysAhead = 60
	}

	requiredIDs := q.RequiredMemberIDs
	// Mirror the slot path: a lone member is implicitly required.
	if len(q.MemberIDs) == 1 && len(requiredIDs) == 0 {
		requiredIDs = q.MemberIDs
	}
	if len(requiredIDs) == 0 {
		return []string{}, nil
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	members := e.fetchDateFilterData(ctx, requiredIDs)

	// Intersect day-of-week coverage across required members.
	coverage := members[requiredIDs[0]].Weekdays
	for _, id := range requiredIDs[1:] {
		next := make(map[int]bool)
		for wd := range members[id].Weekdays {
			if coverage[wd] {
				next[wd] = true
			}
		}
		coverage = next
	}
	if len(coverage) == 0 {
		return []string{}, nil
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var dates []string
	for i := 0; i < daysAhead; i++ {
		day := today.AddDate(0, 0, i)
		if !coverage[int(day.Weekday())] {
			continue
		}
		dateStr := day.Format("2006-01-02")
		blackedOut := false
		for _, id := range requiredIDs {
			for _, b := range members[id].Blackouts {
				if b.Covers(dateStr) {
					blackedOut = true
					break
				}
			}
			if blackedOut {
				break
			}
		}
		if !blackedOut {
			dates = append(dates, dateStr)
		}
	}
	return dates, nil
}

// fetchDateFilterData gathers rule coverage and blackouts for every required
// member concurrently, keyed by provider id. Fetch failures degrade to empty
// coverage, which empties the intersection (fail closed).
func (e *DefaultAvailabilityEngine) fetchDateFilterData(ctx context.Context, memberIDs []string) map[string]*dateFilterData {
	logger := utils.GetLogger()

	resultsCh := make(chan *dateFilterData, len(memberIDs))
	var wg sync.WaitGroup

	for _, id := range memberIDs {
		wg.Add(1)
		go func(providerID string) {
			defer wg.Done()
			dfd := &dateFilterData{ProviderID: providerID, Weekdays: make(map[int]bool)}

			var inner sync.WaitGroup
			inner.Add(1)
			go func() {
				defer inner.Done()
				rules, err := e.Rules.GetRules(ctx, providerID, true)
				if err != nil {
					logger.Warn("fetchDateFilterData: rules fetch failed",
						zap.String("providerID", providerID), zap.Error(err))
					return
				}
				for _, r := range rules {
					dfd.Weekdays[r.DayOfWeek] = true
				}
			}()
			inner.Add(1)
			go func() {
				defer inner.Done()
				blackouts, err := e.Rules.GetBlackouts(ctx, providerID)
				if err != nil {
					logger.Warn("fetchDateFilterData: blackouts fetch failed",
						zap.String("providerID", providerID), zap.Error(err))
					return
				}
				dfd.Blackouts = blackouts
			}()
			inner.Wait()

			resultsCh <- dfd
		}(id)
	}

	wg.Wait()
	close(resultsCh)

	byID := make(map[string]*dateFilterData, len(memberIDs))
	for dfd := range resultsCh {
		byID[dfd.ProviderID] = dfd
	}
	return byID
}
