package availability

import (
	"fmt"
	"sort"
	"time"

	"slotwise/models"
)

// GenerateSlots expands one provider's availability rules for a single day
// into the full ordered slot list, flagging each slot available or not.
//
// For every active rule matching the target date's day of week, it walks
// forward from the rule's start in DurationMinutes increments while the slot
// still fits inside the rule window. A slot is flagged unavailable when it
// starts before now+minimumNoticeHours, or when it overlaps a booked or
// external busy interval whose end has been expanded by BufferMinutes (so a
// previous appointment's trailing buffer blocks the next slot's start).
//
// Rules with inverted or unparseable bounds contribute no slots. The returned
// list contains every slot in the day window, ascending by start time;
// callers filter to Available for client display.
func GenerateSlots(
	targetDate time.Time,
	rules []models.AvailabilityRule,
	svc models.ServiceConfig,
	bookings []models.BusyInterval,
	externalBusy []models.BusyInterval,
	loc *time.Location,
	now time.Time,
	minimumNoticeHours int,
) []models.Slot {
	if svc.DurationMinutes <= 0 {
		return nil
	}

	local := targetDate.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	weekday := int(day.Weekday())

	// Expand every blocking interval's end by the service buffer once, up
	// front, instead of padding each candidate slot.
	buffer := time.Duration(svc.BufferMinutes) * time.Minute
	blocking := make([]models.BusyInterval, 0, len(bookings)+len(externalBusy))
	for _, b := range bookings {
		blocking = append(blocking, models.BusyInterval{Start: b.Start, End: b.End.Add(buffer)})
	}
	for _, b := range externalBusy {
		blocking = append(blocking, models.BusyInterval{Start: b.Start, End: b.End.Add(buffer)})
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	noticeCutoff := now.Add(time.Duration(minimumNoticeHours) * time.Hour)

	var slots []models.Slot
	for _, rule := range rules {
		if !rule.Active || rule.DayOfWeek != weekday {
			continue
		}
		startMin, err := parseHHMM(rule.StartTime)
		if err != nil {
			continue
		}
		endMin, err := parseHHMM(rule.EndTime)
		if err != nil || startMin >= endMin {
			// Malformed rule bounds mean no availability for that rule,
			// not an error.
			continue
		}

		windowStart := day.Add(time.Duration(startMin) * time.Minute)
		windowEnd := day.Add(time.Duration(endMin) * time.Minute)

		for s := windowStart; !s.Add(duration).After(windowEnd); s = s.Add(duration) {
			slot := models.Slot{Start: s, End: s.Add(duration), Available: true}
			if slot.Start.Before(noticeCutoff) {
				slot.Available = false
			} else {
				for _, b := range blocking {
					if b.Overlaps(slot.Start, slot.End) {
						slot.Available = false
						break
					}
				}
			}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	// Overlapping rules are additive; collapse slots that share a start so
	// the grid stays one slot per duration increment.
	deduped := slots[:0]
	for _, s := range slots {
		if len(deduped) > 0 && deduped[len(deduped)-1].Start.Equal(s.Start) {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped
}

// hasRulesForWeekday reports whether any active rule covers the weekday.
func hasRulesForWeekday(rules []models.AvailabilityRule, weekday int) bool {
	for _, r := range rules {
		if r.Active && r.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

// parseHHMM parses an "HH:MM" string into minutes from midnight. Longer
// strings (e.g. "09:00:00") are truncated to their first five characters.
func parseHHMM(s string) (int, error) {
	if len(s) < 5 {
		return 0, fmt.Errorf("invalid time string: %s", s)
	}
	s = s[:5]
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
