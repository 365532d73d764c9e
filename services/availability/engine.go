package availability

import (
	"context"
	"time"

	"slotwise/models"
)

// ListSlotsForDate computes the day's slot grid for the queried members.
// Strict mode ANDs the availability of every required member, keyed by
// identical slot start times; flexible quorum mode additionally counts
// optional members toward MinRequired. Slot objects always come from the
// first required member's grid.
func (e *DefaultAvailabilityEngine) ListSlotsForDate(ctx context.Context, q SlotQuery) ([]models.Slot, error) {
	if len(q.MemberIDs) == 0 {
		return nil, NewInvalidInput("member_ids", "at least one member is required")
	}
	if q.Service.DurationMinutes <= 0 {
		return nil, NewInvalidInput("duration_minutes", "must be positive")
	}
	if q.Service.BufferMinutes < 0 {
		return nil, NewInvalidInput("buffer_minutes", "must not be negative")
	}
	if q.MinRequired < 0 {
		return nil, NewInvalidInput("min_required", "must not be negative")
	}
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, NewInvalidInput("timezone", "unknown timezone "+q.Timezone)
	}
	day, err := time.ParseInLocation("2006-01-02", q.Date, loc)
	if err != nil {
		return nil, NewInvalidInput("date", "expected YYYY-MM-DD")
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	requiredIDs := q.RequiredMemberIDs
	// A lone member is implicitly required: the single-provider case needs
	// no separate code path.
	if len(q.MemberIDs) == 1 && len(requiredIDs) == 0 {
		requiredIDs = q.MemberIDs
	}
	if len(requiredIDs) == 0 {
		// A team with no required member and no quorum seed is empty by
		// definition here; the booking link configuration guards against it.
		return []models.Slot{}, nil
	}

	dayEnd := day.AddDate(0, 0, 1)
	members := e.fetchMemberData(ctx, q.MemberIDs, day, dayEnd, q.ExcludeBookingID)
	weekday := int(day.Weekday())

	// A single required member's blackout vetoes the whole day.
	for _, id := range requiredIDs {
		md, ok := members[id]
		if !ok {
			return []models.Slot{}, nil
		}
		for _, b := range md.Blackouts {
			if b.Covers(q.Date) {
				return []models.Slot{}, nil
			}
		}
	}

	// Every required member must have working-hour coverage for the day.
	for _, id := range requiredIDs {
		if !hasRulesForWeekday(members[id].Rules, weekday) {
			return []models.Slot{}, nil
		}
	}

	generate := func(md *memberData) []models.Slot {
		return GenerateSlots(day, md.Rules, q.Service, md.Bookings, md.Busy, loc, now, e.MinimumNoticeHours)
	}

	seed := generate(members[requiredIDs[0]])
	if len(seed) == 0 {
		return []models.Slot{}, nil
	}

	// Availability of each remaining required member keyed by slot start.
	// Grids that do not line up leave a start missing, which reads as
	// unavailable rather than partially merged.
	requiredAvail := make([]map[int64]bool, 0, len(requiredIDs)-1)
	for _, id := range requiredIDs[1:] {
		requiredAvail = append(requiredAvail, availabilityByStart(generate(members[id])))
	}

	if q.MinRequired < 1 {
		// Strict mode: logical AND across required members.
		out := make([]models.Slot, len(seed))
		for i, slot := range seed {
			available := slot.Available
			for _, avail := range requiredAvail {
				if !available {
					break
				}
				available = avail[slot.Start.Unix()]
			}
			out[i] = models.Slot{Start: slot.Start, End: slot.End, Available: available}
		}
		return out, nil
	}

	// Flexible quorum: required members must all be present; optional members
	// top the count up to MinRequired. Which optional members actually staff
	// the booking is decided at booking time by the assignment resolver.
	var optionalAvail []map[int64]bool
	required := make(map[string]bool, len(requiredIDs))
	for _, id := range requiredIDs {
		required[id] = true
	}
	for _, id := range q.MemberIDs {
		if required[id] {
			continue
		}
		md, ok := members[id]
		if !ok || !hasRulesForWeekday(md.Rules, weekday) {
			continue
		}
		blackedOut := false
		for _, b := range md.Blackouts {
			if b.Covers(q.Date) {
				blackedOut = true
				break
			}
		}
		if blackedOut {
			continue
		}
		optionalAvail = append(optionalAvail, availabilityByStart(generate(md)))
	}

	out := make([]models.Slot, len(seed))
	for i, slot := range seed {
		count := 0
		allRequired := slot.Available
		if slot.Available {
			count++
		}
		for _, avail := range requiredAvail {
			if avail[slot.Start.Unix()] {
				count++
			} else {
				allRequired = false
			}
		}
		for _, avail := range optionalAvail {
			if avail[slot.Start.Unix()] {
				count++
			}
		}
		out[i] = models.Slot{
			Start:     slot.Start,
			End:       slot.End,
			Available: allRequired && count >= q.MinRequired,
		}
	}
	return out, nil
}

// availabilityByStart indexes a member's available slot starts by unix time.
func availabilityByStart(slots []models.Slot) map[int64]bool {
	byStart := make(map[int64]bool, len(slots))
	for _, s := range slots {
		if s.Available {
			byStart[s.Start.Unix()] = true
		}
	}
	return byStart
}
