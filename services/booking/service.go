package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/assignment"
	"slotwise/services/availability"
	"slotwise/services/notification"
	"slotwise/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of Service.
type DefaultBookingService struct {
	Engine       availability.Engine
	Resolver     assignment.Resolver
	Bookings     bookingRepo.BookingRepository
	Notification notification.Service
	Holds        *HoldStore
	Reminders    *asynq.Client
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, []string, error) {
	logger := utils.GetLogger()

	if req.ClientEmail == "" {
		return nil, nil, availability.NewInvalidInput("client_email", "must not be empty")
	}
	if req.Start.IsZero() {
		return nil, nil, availability.NewInvalidInput("start", "must be set")
	}
	if req.Service.DurationMinutes <= 0 {
		return nil, nil, availability.NewInvalidInput("duration_minutes", "must be positive")
	}
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, nil, availability.NewInvalidInput("timezone", "unknown timezone "+req.Timezone)
	}

	memberIDs := req.MemberIDs
	requiredIDs := req.RequiredMemberIDs
	if req.TeamID == "" {
		if req.ProviderID == "" {
			return nil, nil, availability.NewInvalidInput("provider_id", "either provider_id or team_id must be set")
		}
		memberIDs = []string{req.ProviderID}
		requiredIDs = memberIDs
	} else if len(memberIDs) == 0 {
		return nil, nil, availability.NewInvalidInput("member_ids", "team bookings require the member list")
	}

	end := req.Start.Add(time.Duration(req.Service.DurationMinutes) * time.Minute)

	// Re-check availability for the requested start. This is advisory; the
	// transactional insert below is the authoritative conflict gate.
	slots, err := s.Engine.ListSlotsForDate(ctx, availability.SlotQuery{
		MemberIDs:         memberIDs,
		RequiredMemberIDs: requiredIDs,
		Date:              req.Start.In(loc).Format("2006-01-02"),
		Service:           req.Service,
		Timezone:          req.Timezone,
		MinRequired:       req.MinRequired,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to verify availability: %w", err)
	}
	if !slotOpenAt(slots, req.Start) {
		return nil, nil, ErrSlotUnavailable
	}

	holdKey := holdKeyFor(req, memberIDs)
	if s.Holds != nil {
		acquired, err := s.Holds.Acquire(ctx, holdKey)
		if err != nil {
			logger.Warn("hold acquisition failed, proceeding without hold",
				zap.String("key", holdKey), zap.Error(err))
		} else if !acquired {
			return nil, nil, ErrSlotHeld
		}
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		ProviderID:  req.ProviderID,
		TeamID:      req.TeamID,
		ClientEmail: req.ClientEmail,
		Start:       req.Start,
		End:         end,
		Status:      models.BookingStatusConfirmed,
		Service:     req.Service,
		MinRequired: req.MinRequired,
		Mode:        req.Mode,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}
	if booking.ProviderID == "" && len(requiredIDs) > 0 {
		booking.ProviderID = requiredIDs[0]
	}
	booking.MemberIDs = requiredIDs

	// Required members are the ones every booking shape must keep free at
	// creation; the optional members a team booking staffs are conflict-
	// checked by the assignment resolver and appended to the member list
	// once chosen.
	if err := s.Bookings.CreateWithConflictCheck(ctx, booking, requiredIDs); err != nil {
		if s.Holds != nil {
			s.Holds.Release(ctx, holdKey)
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, nil, ErrSlotUnavailable
		}
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	assigned := requiredIDs
	if req.TeamID != "" && req.MinRequired >= 1 {
		assigned, err = s.Resolver.AssignMembers(ctx, assignment.Request{
			BookingID:   booking.ID,
			TeamID:      req.TeamID,
			Start:       booking.Start,
			End:         booking.End,
			MinRequired: req.MinRequired,
			Mode:        req.Mode,
		})
		if err != nil {
			// Roll the committed booking back rather than leave a
			// half-staffed record blocking the slot.
			if cancelErr := s.Bookings.Cancel(ctx, booking.ID); cancelErr != nil {
				logger.Error("failed to cancel booking after assignment failure",
					zap.String("bookingID", booking.ID), zap.Error(cancelErr))
			}
			if s.Holds != nil {
				s.Holds.Release(ctx, holdKey)
			}
			return nil, nil, fmt.Errorf("assignment failed for booking %s, booking cancelled: %w", booking.ID, err)
		}
		if err := s.Bookings.AddBlockedProviders(ctx, booking.ID, assigned); err != nil {
			logger.Error("failed to extend booking member list with assigned providers",
				zap.String("bookingID", booking.ID), zap.Error(err))
		} else {
			booking.MemberIDs = mergeMemberIDs(booking.MemberIDs, assigned)
		}
	}

	if s.Notification != nil {
		if err := s.Notification.SendBookingConfirmation(ctx, booking, assigned); err != nil {
			logger.Warn("confirmation notification failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	s.scheduleReminder(booking, assigned)

	return booking, assigned, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if time.Now().After(booking.Start) {
		return ErrBookingStarted
	}
	if err := s.Bookings.Cancel(ctx, bookingID); err != nil {
		return err
	}
	if s.Holds != nil {
		s.Holds.Release(ctx, holdKeyForBooking(booking))
	}
	return nil
}

// scheduleReminder enqueues the pre-appointment reminder an hour before the
// booking starts. Best effort: a queue failure never fails the booking.
func (s *DefaultBookingService) scheduleReminder(booking *models.Booking, assigned []string) {
	if s.Reminders == nil {
		return
	}
	fireAt := booking.Start.Add(-1 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		ClientEmail: booking.ClientEmail,
		ProviderIDs: assigned,
		Start:       booking.Start,
		Title:       "Upcoming appointment",
		Body:        fmt.Sprintf("Your appointment starts at %s.", booking.Start.Format(time.RFC1123)),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Warn("failed to build reminder task",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// mergeMemberIDs appends the ids not already present, preserving order.
func mergeMemberIDs(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	out := existing
	for _, id := range extra {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func slotOpenAt(slots []models.Slot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s.Available
		}
	}
	return false
}

func holdKeyFor(req CreateRequest, memberIDs []string) string {
	owner := req.TeamID
	if owner == "" && len(memberIDs) > 0 {
		owner = memberIDs[0]
	}
	return fmt.Sprintf("hold:%s:%d", owner, req.Start.Unix())
}

func holdKeyForBooking(b *models.Booking) string {
	owner := b.TeamID
	if owner == "" {
		owner = b.ProviderID
	}
	return fmt.Sprintf("hold:%s:%d", owner, b.Start.Unix())
}
