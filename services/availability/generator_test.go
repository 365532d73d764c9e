package availability

import (
	"testing"
	"time"

	"slotwise/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func workdayRule(start, end string) models.AvailabilityRule {
	return models.AvailabilityRule{
		ID: "r1", ProviderID: "p1", DayOfWeek: 1,
		StartTime: start, EndTime: end, Active: true,
	}
}

func TestGenerateSlotsFullDayGrid(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "17:00")}
	svc := models.ServiceConfig{DurationMinutes: 30}
	now := monday.AddDate(0, 0, -7)

	slots := GenerateSlots(monday, rules, svc, nil, nil, time.UTC, now, 0)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for 8h window at 30min, got %d", len(slots))
	}
	if !slots[0].Start.Equal(mondayAt(9, 0)) {
		t.Errorf("first slot starts at %v, want 09:00", slots[0].Start)
	}
	if !slots[15].End.Equal(mondayAt(17, 0)) {
		t.Errorf("last slot ends at %v, want 17:00", slots[15].End)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End) {
			t.Errorf("slot %d not contiguous: prev end %v, start %v", i, slots[i-1].End, slots[i].Start)
		}
	}
	for i, s := range slots {
		if !s.Available {
			t.Errorf("slot %d (%v) unexpectedly unavailable", i, s.Start)
		}
	}
}

func TestGenerateSlotsPartialTailExcluded(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "10:15")}
	svc := models.ServiceConfig{DurationMinutes: 30}
	now := monday.AddDate(0, 0, -7)

	slots := GenerateSlots(monday, rules, svc, nil, nil, time.UTC, now, 0)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots in a 75min window, got %d", len(slots))
	}
	if !slots[1].End.Equal(mondayAt(10, 0)) {
		t.Errorf("last slot ends at %v, want 10:00", slots[1].End)
	}
}

func TestGenerateSlotsBufferBlocksFollowingSlot(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "12:00")}
	svc := models.ServiceConfig{DurationMinutes: 30, BufferMinutes: 15}
	now := monday.AddDate(0, 0, -7)
	bookings := []models.BusyInterval{{Start: mondayAt(10, 0), End: mondayAt(10, 30)}}

	slots := GenerateSlots(monday, rules, svc, bookings, nil, time.UTC, now, 0)

	want := map[string]bool{
		"09:00": true,
		"09:30": true,
		"10:00": false, // booked
		"10:30": false, // trailing buffer reaches 10:45
		"11:00": true,
		"11:30": true,
	}
	for _, s := range slots {
		key := s.Start.Format("15:04")
		if s.Available != want[key] {
			t.Errorf("slot %s: available=%v, want %v", key, s.Available, want[key])
		}
	}
}

func TestGenerateSlotsMinimumNotice(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "12:00")}
	svc := models.ServiceConfig{DurationMinutes: 60}
	now := mondayAt(8, 0)

	slots := GenerateSlots(monday, rules, svc, nil, nil, time.UTC, now, 2)

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	// Cutoff is 10:00; the 09:00 slot starts before it.
	if slots[0].Available {
		t.Error("09:00 slot should be below minimum notice")
	}
	if !slots[1].Available || !slots[2].Available {
		t.Error("10:00 and 11:00 slots should satisfy minimum notice")
	}
}

func TestGenerateSlotsExternalBusyBlocks(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "11:00")}
	svc := models.ServiceConfig{DurationMinutes: 60}
	now := monday.AddDate(0, 0, -7)
	busy := []models.BusyInterval{{Start: mondayAt(9, 30), End: mondayAt(10, 30)}}

	slots := GenerateSlots(monday, rules, svc, nil, busy, time.UTC, now, 0)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Available || slots[1].Available {
		t.Error("both slots overlap the external busy interval and should be unavailable")
	}
}

func TestGenerateSlotsSkipsMalformedAndInactiveRules(t *testing.T) {
	svc := models.ServiceConfig{DurationMinutes: 30}
	now := monday.AddDate(0, 0, -7)

	cases := []struct {
		name string
		rule models.AvailabilityRule
	}{
		{"inverted bounds", workdayRule("17:00", "09:00")},
		{"unparseable start", workdayRule("9am", "17:00")},
		{"inactive", func() models.AvailabilityRule {
			r := workdayRule("09:00", "17:00")
			r.Active = false
			return r
		}()},
		{"wrong weekday", func() models.AvailabilityRule {
			r := workdayRule("09:00", "17:00")
			r.DayOfWeek = 3
			return r
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := GenerateSlots(monday, []models.AvailabilityRule{tc.rule}, svc, nil, nil, time.UTC, now, 0)
			if len(slots) != 0 {
				t.Errorf("expected no slots, got %d", len(slots))
			}
		})
	}
}

func TestGenerateSlotsOverlappingRulesCollapse(t *testing.T) {
	rules := []models.AvailabilityRule{
		workdayRule("09:00", "12:00"),
		workdayRule("10:00", "13:00"),
	}
	svc := models.ServiceConfig{DurationMinutes: 60}
	now := monday.AddDate(0, 0, -7)

	slots := GenerateSlots(monday, rules, svc, nil, nil, time.UTC, now, 0)

	if len(slots) != 4 {
		t.Fatalf("expected 4 distinct starts (09..12), got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Errorf("starts not strictly ascending at index %d", i)
		}
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00", "17:00")}
	svc := models.ServiceConfig{DurationMinutes: 45, BufferMinutes: 10}
	now := mondayAt(7, 0)
	bookings := []models.BusyInterval{{Start: mondayAt(13, 0), End: mondayAt(13, 45)}}

	first := GenerateSlots(monday, rules, svc, bookings, nil, time.UTC, now, 1)
	second := GenerateSlots(monday, rules, svc, bookings, nil, time.UTC, now, 1)

	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || first[i].Available != second[i].Available {
			t.Errorf("slot %d differs between identical calls", i)
		}
	}
}

func TestGenerateSlotsHandlesSecondsInRuleTimes(t *testing.T) {
	rules := []models.AvailabilityRule{workdayRule("09:00:00", "11:00:00")}
	svc := models.ServiceConfig{DurationMinutes: 60}
	now := monday.AddDate(0, 0, -7)

	slots := GenerateSlots(monday, rules, svc, nil, nil, time.UTC, now, 0)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}
