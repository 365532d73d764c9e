package assignment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	assignmentRepo "slotwise/database/repository/assignment"
	bookingRepo "slotwise/database/repository/booking"
	teamRepo "slotwise/database/repository/team"
	"slotwise/models"
	"slotwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request describes one confirmed flexible-quorum booking to staff.
type Request struct {
	BookingID   string
	TeamID      string
	Start       time.Time
	End         time.Time
	MinRequired int
	Mode        string // models.ModeRoundRobin or models.ModeLoadBalanced
	Now         time.Time
}

// Resolver selects which team members staff a flexible booking and persists
// the decision records.
type Resolver interface {
	AssignMembers(ctx context.Context, req Request) ([]string, error)
}

// DefaultAssignmentResolver is the production implementation.
type DefaultAssignmentResolver struct {
	Teams       teamRepo.TeamRepository
	Bookings    bookingRepo.BookingRepository
	Assignments assignmentRepo.AssignmentRepository
}

// memberStats carries the per-member scoring inputs for one request.
type memberStats struct {
	member           models.TeamMember
	conflicting      bool
	bookingsThisWeek int
	bookingsOnDay    int       // assignments whose booking falls on the requested date
	lastAssignedAt   time.Time // zero = never assigned, sorts first
}

// AssignMembers assigns every required member (reason "required"), then fills
// the remaining quorum from eligible optional members according to the
// policy: round_robin picks least-recently-assigned, load_balanced picks
// fewest assignments this ISO week. Optional members with a conflicting
// booking, or already at their max_bookings_per_day cap for the requested
// date, are never assigned; if fewer eligible members exist than needed the
// quorum is under-filled silently. Persists one assignment record per member
// and returns the assigned provider ids.
func (r *DefaultAssignmentResolver) AssignMembers(ctx context.Context, req Request) ([]string, error) {
	if req.BookingID == "" {
		return nil, newInvalidRequest("booking_id", "must not be empty")
	}
	if req.TeamID == "" {
		return nil, newInvalidRequest("team_id", "must not be empty")
	}
	if !req.Start.Before(req.End) {
		return nil, newInvalidRequest("start", "must be before end")
	}
	if req.MinRequired < 1 {
		return nil, newInvalidRequest("min_required", "must be at least 1")
	}
	if req.Mode != models.ModeRoundRobin && req.Mode != models.ModeLoadBalanced {
		return nil, newInvalidRequest("mode", "must be round_robin or load_balanced")
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	members, err := r.Teams.GetMembers(ctx, req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members for team %s: %w", req.TeamID, err)
	}
	if len(members) == 0 {
		return []string{}, nil
	}

	stats := r.gatherStats(ctx, members, req, now)

	var required, optional []memberStats
	for _, ms := range stats {
		if ms.member.IsRequired {
			required = append(required, ms)
		} else {
			optional = append(optional, ms)
		}
	}

	var assignments []models.Assignment
	assign := func(providerID, reason string) {
		assignments = append(assignments, models.Assignment{
			ID:           uuid.New().String(),
			BookingID:    req.BookingID,
			ProviderID:   providerID,
			Reason:       reason,
			AssignedAt:   now,
			BookingStart: req.Start,
		})
	}

	// Required members are assigned unconditionally. A required member's own
	// conflict is a data integrity issue the booking flow prevents upstream.
	for _, ms := range required {
		assign(ms.member.ProviderID, models.AssignReasonRequired)
	}

	additionalNeeded := req.MinRequired - len(required)
	if additionalNeeded > 0 {
		eligible := optional[:0]
		for _, ms := range optional {
			if ms.conflicting {
				continue
			}
			if limit := ms.member.MaxBookingsPerDay; limit != nil && ms.bookingsOnDay >= *limit {
				continue
			}
			eligible = append(eligible, ms)
		}

		switch req.Mode {
		case models.ModeRoundRobin:
			sort.SliceStable(eligible, func(i, j int) bool {
				return eligible[i].lastAssignedAt.Before(eligible[j].lastAssignedAt)
			})
		case models.ModeLoadBalanced:
			sort.SliceStable(eligible, func(i, j int) bool {
				return eligible[i].bookingsThisWeek < eligible[j].bookingsThisWeek
			})
		}

		if additionalNeeded > len(eligible) {
			additionalNeeded = len(eligible)
		}
		for _, ms := range eligible[:additionalNeeded] {
			assign(ms.member.ProviderID, req.Mode)
		}
	}

	if err := r.Assignments.PersistAssignments(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to persist assignments for booking %s: %w", req.BookingID, err)
	}

	assigned := make([]string, 0, len(assignments))
	for _, a := range assignments {
		assigned = append(assigned, a.ProviderID)
	}
	return assigned, nil
}

// gatherStats fans out the per-member conflict checks concurrently and joins
// them with the ISO-week assignment history. Fetch failures degrade to
// conservative defaults: a failed conflict check excludes the member from the
// optional pool, a failed history fetch scores everyone as never assigned.
func (r *DefaultAssignmentResolver) gatherStats(ctx context.Context, members []models.TeamMember, req Request, now time.Time) []memberStats {
	logger := utils.GetLogger()

	providerIDs := make([]string, len(members))
	for i, m := range members {
		providerIDs[i] = m.ProviderID
	}

	type conflictResult struct {
		providerID  string
		conflicting bool
	}
	conflictCh := make(chan conflictResult, len(members))
	var wg sync.WaitGroup

	for _, m := range members {
		wg.Add(1)
		go func(providerID string) {
			defer wg.Done()
			conflicting, err := r.Bookings.HasConflicting(ctx, providerID, req.Start, req.End)
			if err != nil {
				logger.Warn("assignment: conflict check failed, excluding member from pool",
					zap.String("providerID", providerID), zap.Error(err))
				conflicting = true
			}
			conflictCh <- conflictResult{providerID: providerID, conflicting: conflicting}
		}(m.ProviderID)
	}

	history, err := r.Assignments.RecentAssignments(ctx, providerIDs, isoWeekStart(now))
	if err != nil {
		logger.Warn("assignment: history fetch failed, scoring members as never assigned",
			zap.String("teamID", req.TeamID), zap.Error(err))
		history = nil
	}

	wg.Wait()
	close(conflictCh)

	conflicts := make(map[string]bool, len(members))
	for cr := range conflictCh {
		conflicts[cr.providerID] = cr.conflicting
	}

	reqDay := req.Start.In(now.Location()).Format("2006-01-02")
	counts := make(map[string]int)
	dayCounts := make(map[string]int)
	lastAt := make(map[string]time.Time)
	for _, a := range history {
		counts[a.ProviderID]++
		if a.BookingStart.In(now.Location()).Format("2006-01-02") == reqDay {
			dayCounts[a.ProviderID]++
		}
		if a.AssignedAt.After(lastAt[a.ProviderID]) {
			lastAt[a.ProviderID] = a.AssignedAt
		}
	}

	stats := make([]memberStats, len(members))
	for i, m := range members {
		stats[i] = memberStats{
			member:           m,
			conflicting:      conflicts[m.ProviderID],
			bookingsThisWeek: counts[m.ProviderID],
			bookingsOnDay:    dayCounts[m.ProviderID],
			lastAssignedAt:   lastAt[m.ProviderID],
		}
	}
	return stats
}

// isoWeekStart returns Monday 00:00 of now's ISO week in now's location.
func isoWeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
