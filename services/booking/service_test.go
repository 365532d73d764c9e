package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/assignment"
	"slotwise/services/availability"
)

type stubEngine struct {
	slots []models.Slot
	err   error
}

func (s *stubEngine) ListSlotsForDate(ctx context.Context, q availability.SlotQuery) ([]models.Slot, error) {
	return s.slots, s.err
}

func (s *stubEngine) ListAvailableDates(ctx context.Context, q availability.DateQuery) ([]string, error) {
	return nil, nil
}

type stubResolver struct {
	assigned []string
	gotReq   assignment.Request
	err      error
}

func (s *stubResolver) AssignMembers(ctx context.Context, req assignment.Request) ([]string, error) {
	s.gotReq = req
	return s.assigned, s.err
}

// stubBookingRepo is an in-memory store mirroring the Mongo repository's
// conflict semantics: a booking blocks every provider in its member list.
type stubBookingRepo struct {
	created   *models.Booking
	createErr error
	cancelled []string
	blocked   map[string][]string
	stored    map[string]*models.Booking
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := s.stored[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	return b, nil
}

func (s *stubBookingRepo) GetBookedIntervals(ctx context.Context, providerID string, from, to time.Time, excludeID string) ([]models.BusyInterval, error) {
	return nil, nil
}

func (s *stubBookingRepo) HasConflicting(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	return s.blocks(providerID, start, end), nil
}

func (s *stubBookingRepo) blocks(providerID string, start, end time.Time) bool {
	for _, b := range s.stored {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if !containsID(b.MemberIDs, providerID) {
			continue
		}
		if b.Interval().Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (s *stubBookingRepo) CreateWithConflictCheck(ctx context.Context, b *models.Booking, providerIDs []string) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, id := range providerIDs {
		if s.blocks(id, b.Start, b.End) {
			return bookingRepo.ErrSlotTaken
		}
	}
	s.created = b
	if s.stored == nil {
		s.stored = make(map[string]*models.Booking)
	}
	s.stored[b.ID] = b
	return nil
}

func (s *stubBookingRepo) AddBlockedProviders(ctx context.Context, id string, providerIDs []string) error {
	if s.blocked == nil {
		s.blocked = make(map[string][]string)
	}
	s.blocked[id] = append(s.blocked[id], providerIDs...)
	if b, ok := s.stored[id]; ok {
		for _, pid := range providerIDs {
			if !containsID(b.MemberIDs, pid) {
				b.MemberIDs = append(b.MemberIDs, pid)
			}
		}
	}
	return nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	if b, ok := s.stored[id]; ok {
		b.Status = models.BookingStatusCancelled
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type countingNotifier struct {
	confirmations int
	reminders     int
}

func (n *countingNotifier) SendBookingConfirmation(ctx context.Context, b *models.Booking, assigned []string) error {
	n.confirmations++
	return nil
}

func (n *countingNotifier) SendBookingReminder(ctx context.Context, p models.ReminderPayload) error {
	n.reminders++
	return nil
}

var slotStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func openSlots() []models.Slot {
	return []models.Slot{
		{Start: slotStart.Add(-time.Hour), End: slotStart, Available: false},
		{Start: slotStart, End: slotStart.Add(time.Hour), Available: true},
	}
}

func createReq() CreateRequest {
	return CreateRequest{
		ProviderID:  "p1",
		ClientEmail: "client@example.com",
		Start:       slotStart,
		Service:     models.ServiceConfig{DurationMinutes: 60},
		Timezone:    "UTC",
	}
}

func TestCreateBookingSingleProvider(t *testing.T) {
	repo := &stubBookingRepo{}
	notifier := &countingNotifier{}
	svc := &DefaultBookingService{
		Engine:       &stubEngine{slots: openSlots()},
		Bookings:     repo,
		Notification: notifier,
	}

	created, assigned, err := svc.CreateBooking(context.Background(), createReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("booking id not generated")
	}
	if created.Status != models.BookingStatusConfirmed {
		t.Errorf("status %q, want confirmed", created.Status)
	}
	if !created.End.Equal(slotStart.Add(time.Hour)) {
		t.Errorf("end %v, want start plus duration", created.End)
	}
	if repo.created == nil {
		t.Fatal("booking never reached the repository")
	}
	if len(assigned) != 1 || assigned[0] != "p1" {
		t.Errorf("assigned %v, want [p1]", assigned)
	}
	if len(created.MemberIDs) != 1 || created.MemberIDs[0] != "p1" {
		t.Errorf("member ids %v, want [p1]", created.MemberIDs)
	}
	if notifier.confirmations != 1 {
		t.Errorf("confirmations %d, want 1", notifier.confirmations)
	}
}

func TestCreateBookingSlotNotOpen(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Bookings: repo,
	}

	req := createReq()
	req.Start = slotStart.Add(-time.Hour) // the unavailable slot
	_, _, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if repo.created != nil {
		t.Error("booking must not be persisted when the slot is closed")
	}
}

func TestCreateBookingStartOffGrid(t *testing.T) {
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Bookings: &stubBookingRepo{},
	}

	req := createReq()
	req.Start = slotStart.Add(15 * time.Minute)
	_, _, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for off-grid start, got %v", err)
	}
}

func TestCreateBookingConflictAtCommit(t *testing.T) {
	repo := &stubBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Bookings: repo,
	}

	_, _, err := svc.CreateBooking(context.Background(), createReq())
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable on commit conflict, got %v", err)
	}
}

func TestCreateBookingTeamRunsAssignment(t *testing.T) {
	repo := &stubBookingRepo{}
	resolver := &stubResolver{assigned: []string{"lead", "opt2"}}
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Resolver: resolver,
		Bookings: repo,
	}

	req := createReq()
	req.ProviderID = ""
	req.TeamID = "team1"
	req.MemberIDs = []string{"lead", "opt1", "opt2"}
	req.RequiredMemberIDs = []string{"lead"}
	req.MinRequired = 2
	req.Mode = models.ModeRoundRobin

	created, assigned, err := svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.gotReq.BookingID != created.ID {
		t.Errorf("resolver saw booking %q, want %q", resolver.gotReq.BookingID, created.ID)
	}
	if resolver.gotReq.MinRequired != 2 || resolver.gotReq.Mode != models.ModeRoundRobin {
		t.Errorf("resolver request %+v missing quorum parameters", resolver.gotReq)
	}
	if len(assigned) != 2 || assigned[0] != "lead" || assigned[1] != "opt2" {
		t.Errorf("assigned %v, want [lead opt2]", assigned)
	}
	if got := repo.blocked[created.ID]; !containsID(got, "opt2") {
		t.Errorf("member list extension %v missing assigned optional member opt2", got)
	}
	if !containsID(created.MemberIDs, "opt2") {
		t.Errorf("booking member ids %v missing assigned optional member opt2", created.MemberIDs)
	}
}

func TestCreateBookingBlocksEveryTeamMember(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Bookings: repo,
	}

	teamReq := createReq()
	teamReq.ProviderID = ""
	teamReq.TeamID = "team1"
	teamReq.MemberIDs = []string{"a", "b"}
	teamReq.RequiredMemberIDs = []string{"a", "b"}

	if _, _, err := svc.CreateBooking(context.Background(), teamReq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// b is the non-primary required member; the team booking must still
	// block a solo booking for b at the same time.
	soloReq := createReq()
	soloReq.ProviderID = "b"
	_, _, err := svc.CreateBooking(context.Background(), soloReq)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for double-booked member b, got %v", err)
	}
}

func TestCreateBookingAssignmentFailureCancelsBooking(t *testing.T) {
	repo := &stubBookingRepo{}
	resolver := &stubResolver{err: errors.New("team store down")}
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Resolver: resolver,
		Bookings: repo,
	}

	req := createReq()
	req.ProviderID = ""
	req.TeamID = "team1"
	req.MemberIDs = []string{"lead", "opt1"}
	req.RequiredMemberIDs = []string{"lead"}
	req.MinRequired = 2
	req.Mode = models.ModeRoundRobin

	_, _, err := svc.CreateBooking(context.Background(), req)
	if err == nil {
		t.Fatal("expected assignment failure to surface")
	}
	if repo.created == nil {
		t.Fatal("booking never reached the repository")
	}
	if len(repo.cancelled) != 1 || repo.cancelled[0] != repo.created.ID {
		t.Errorf("cancelled %v, want the rolled-back booking %s", repo.cancelled, repo.created.ID)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := &DefaultBookingService{
		Engine:   &stubEngine{slots: openSlots()},
		Bookings: &stubBookingRepo{},
	}

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"no client email", func(r *CreateRequest) { r.ClientEmail = "" }},
		{"zero start", func(r *CreateRequest) { r.Start = time.Time{} }},
		{"zero duration", func(r *CreateRequest) { r.Service.DurationMinutes = 0 }},
		{"no provider or team", func(r *CreateRequest) { r.ProviderID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createReq()
			tc.mutate(&req)
			_, _, err := svc.CreateBooking(context.Background(), req)
			if !availability.IsInvalidInput(err) {
				t.Errorf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestCancelBooking(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	repo := &stubBookingRepo{stored: map[string]*models.Booking{
		"bk1": {ID: "bk1", ProviderID: "p1", Start: future, Status: models.BookingStatusConfirmed},
	}}
	svc := &DefaultBookingService{Bookings: repo}

	if err := svc.CancelBooking(context.Background(), "bk1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.cancelled) != 1 || repo.cancelled[0] != "bk1" {
		t.Errorf("cancelled %v, want [bk1]", repo.cancelled)
	}
}

func TestCancelBookingAlreadyStarted(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &stubBookingRepo{stored: map[string]*models.Booking{
		"bk1": {ID: "bk1", ProviderID: "p1", Start: past, Status: models.BookingStatusConfirmed},
	}}
	svc := &DefaultBookingService{Bookings: repo}

	err := svc.CancelBooking(context.Background(), "bk1")
	if !errors.Is(err, ErrBookingStarted) {
		t.Fatalf("expected ErrBookingStarted, got %v", err)
	}
	if len(repo.cancelled) != 0 {
		t.Error("started booking must not be cancelled")
	}
}
