package service

import (
	"context"
	"testing"

	"eventhub/core/errors"
	"eventhub/modules/rsvp/dto"
	"eventhub/modules/rsvp/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// fakeRsvpRepo keeps the ledger in memory and enforces the one-row-per-pair
// rule the way the unique constraint does.
type fakeRsvpRepo struct {
	rsvps     map[uuid.UUID]*entity.Rsvp
	events    map[uuid.UUID]*int
	createErr error
}

func newFakeRsvpRepo() *fakeRsvpRepo {
	return &fakeRsvpRepo{
		rsvps:  make(map[uuid.UUID]*entity.Rsvp),
		events: make(map[uuid.UUID]*int),
	}
}

func (f *fakeRsvpRepo) addEvent(capacity *int) uuid.UUID {
	id := uuid.New()
	f.events[id] = capacity
	return id
}

func (f *fakeRsvpRepo) GetByUserAndEvent(_ context.Context, userID, eventID uuid.UUID) (*entity.Rsvp, error) {
	for _, r := range f.rsvps {
		if r.UserID == userID && r.EventID == eventID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRsvpRepo) CreateGoing(_ context.Context, rsvp *entity.Rsvp) (*entity.Rsvp, error) {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return nil, err
	}
	if _, ok := f.events[rsvp.EventID]; !ok {
		return nil, &pq.Error{Code: "23503"}
	}
	for _, r := range f.rsvps {
		if r.UserID == rsvp.UserID && r.EventID == rsvp.EventID {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	created := *rsvp
	created.ID = uuid.New()
	created.Status = entity.StatusGoing
	f.rsvps[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeRsvpRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(f.rsvps, id)
	return nil
}

func (f *fakeRsvpRepo) ListGoingByEvent(_ context.Context, eventID uuid.UUID) ([]entity.Rsvp, error) {
	var out []entity.Rsvp
	for _, r := range f.rsvps {
		if r.EventID == eventID && r.Status == entity.StatusGoing {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRsvpRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Rsvp, error) {
	var out []entity.Rsvp
	for _, r := range f.rsvps {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRsvpRepo) SumSeatsTaken(_ context.Context, eventID uuid.UUID) (int, error) {
	total := 0
	for _, r := range f.rsvps {
		if r.EventID == eventID && r.Status == entity.StatusGoing {
			total += 1 + r.GuestsCount
		}
	}
	return total, nil
}

func (f *fakeRsvpRepo) GetEventCapacity(_ context.Context, eventID uuid.UUID) (*int, bool, error) {
	capacity, ok := f.events[eventID]
	if !ok {
		return nil, false, nil
	}
	return capacity, true, nil
}

func intPtr(v int) *int { return &v }

func TestToggleCreatesGoing(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(nil)
	svc := NewRsvpService(repo)
	userID := uuid.New()

	resp, appErr := svc.Toggle(context.Background(), userID, eventID, &dto.ToggleRequest{GuestsCount: 1})
	if appErr != nil {
		t.Fatalf("Toggle() error = %v", appErr)
	}
	if resp.Status != string(entity.StatusGoing) {
		t.Errorf("status = %q, want %q", resp.Status, entity.StatusGoing)
	}
	if resp.SeatsTaken != 2 {
		t.Errorf("seats_taken = %d, want 2", resp.SeatsTaken)
	}
	if len(repo.rsvps) != 1 {
		t.Errorf("ledger has %d rows, want 1", len(repo.rsvps))
	}
}

func TestToggleRetractsGoing(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(nil)
	svc := NewRsvpService(repo)
	userID := uuid.New()

	if _, appErr := svc.Toggle(context.Background(), userID, eventID, nil); appErr != nil {
		t.Fatalf("first Toggle() error = %v", appErr)
	}

	resp, appErr := svc.Toggle(context.Background(), userID, eventID, nil)
	if appErr != nil {
		t.Fatalf("second Toggle() error = %v", appErr)
	}
	if resp.Status != dto.StatusAbsent {
		t.Errorf("status = %q, want %q", resp.Status, dto.StatusAbsent)
	}
	if resp.SeatsTaken != 0 {
		t.Errorf("seats_taken = %d, want 0", resp.SeatsTaken)
	}
	if len(repo.rsvps) != 0 {
		t.Errorf("ledger has %d rows, want 0", len(repo.rsvps))
	}
}

func TestDoubleToggleRestoresLedger(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(intPtr(5))
	svc := NewRsvpService(repo)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, appErr := svc.Toggle(context.Background(), userID, eventID, nil); appErr != nil {
			t.Fatalf("Toggle() #%d error = %v", i+1, appErr)
		}
	}

	if len(repo.rsvps) != 0 {
		t.Errorf("ledger has %d rows after double toggle, want 0", len(repo.rsvps))
	}
}

func TestToggleUnknownEvent(t *testing.T) {
	repo := newFakeRsvpRepo()
	svc := NewRsvpService(repo)

	_, appErr := svc.Toggle(context.Background(), uuid.New(), uuid.New(), nil)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("Toggle() error = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestToggleNegativeGuestsRejected(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(nil)
	svc := NewRsvpService(repo)

	_, appErr := svc.Toggle(context.Background(), uuid.New(), eventID, &dto.ToggleRequest{GuestsCount: -1})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("Toggle() error = %v, want %s", appErr, errors.ErrInvalidInput)
	}
	if len(repo.rsvps) != 0 {
		t.Errorf("ledger has %d rows, want 0", len(repo.rsvps))
	}
}

// A concurrent toggle for the same pair wins the insert race; the loser must
// report the winner's state instead of failing.
func TestToggleRecoversFromInsertRace(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(nil)
	svc := NewRsvpService(repo)
	userID := uuid.New()

	winner := &entity.Rsvp{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
		Status:  entity.StatusGoing,
	}
	repo.rsvps[winner.ID] = winner
	repo.createErr = &pq.Error{Code: "23505"}

	resp, appErr := svc.Toggle(context.Background(), userID, eventID, nil)
	if appErr != nil {
		t.Fatalf("Toggle() error = %v", appErr)
	}
	if resp.Status != string(entity.StatusGoing) {
		t.Errorf("status = %q, want %q", resp.Status, entity.StatusGoing)
	}
	if len(repo.rsvps) != 1 {
		t.Errorf("ledger has %d rows, want 1", len(repo.rsvps))
	}
}

// Fullness is advisory: a full event still admits further toggles.
func TestToggleFullEventStillAdmits(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(intPtr(2))
	svc := NewRsvpService(repo)

	respA, appErr := svc.Toggle(context.Background(), uuid.New(), eventID, &dto.ToggleRequest{GuestsCount: 1})
	if appErr != nil {
		t.Fatalf("Toggle() A error = %v", appErr)
	}
	if !respA.IsFull || respA.SeatsTaken != 2 {
		t.Errorf("after A: seats = %d, is_full = %v, want 2, true", respA.SeatsTaken, respA.IsFull)
	}

	respB, appErr := svc.Toggle(context.Background(), uuid.New(), eventID, nil)
	if appErr != nil {
		t.Fatalf("Toggle() B error = %v, want admission past capacity", appErr)
	}
	if respB.Status != string(entity.StatusGoing) {
		t.Errorf("B status = %q, want %q", respB.Status, entity.StatusGoing)
	}
	if respB.SeatsTaken != 3 || !respB.IsFull {
		t.Errorf("after B: seats = %d, is_full = %v, want 3, true", respB.SeatsTaken, respB.IsFull)
	}
}

func TestGetAttendance(t *testing.T) {
	repo := newFakeRsvpRepo()
	eventID := repo.addEvent(intPtr(4))
	svc := NewRsvpService(repo)

	if _, appErr := svc.Toggle(context.Background(), uuid.New(), eventID, &dto.ToggleRequest{GuestsCount: 2}); appErr != nil {
		t.Fatalf("Toggle() error = %v", appErr)
	}

	resp, appErr := svc.GetAttendance(context.Background(), eventID)
	if appErr != nil {
		t.Fatalf("GetAttendance() error = %v", appErr)
	}
	if resp.SeatsTaken != 3 {
		t.Errorf("seats_taken = %d, want 3", resp.SeatsTaken)
	}
	if resp.IsFull {
		t.Error("is_full = true, want false")
	}
	if len(resp.Going) != 1 {
		t.Errorf("going list has %d entries, want 1", len(resp.Going))
	}

	// The listing path and the aggregate path must agree on the same ledger.
	sum, err := repo.SumSeatsTaken(context.Background(), eventID)
	if err != nil {
		t.Fatalf("SumSeatsTaken() error = %v", err)
	}
	if sum != resp.SeatsTaken {
		t.Errorf("aggregate = %d, listing = %d, want equal", sum, resp.SeatsTaken)
	}
}

func TestGetAttendanceUnknownEvent(t *testing.T) {
	svc := NewRsvpService(newFakeRsvpRepo())

	_, appErr := svc.GetAttendance(context.Background(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("GetAttendance() error = %v, want %s", appErr, errors.ErrNotFound)
	}
}
