//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/feedback"
	"hotel-backoffice/internal/domain/guest"
	"hotel-backoffice/internal/domain/inventory"
	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/domain/staff"
	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeState is a shared in-memory backing store for the fake unit of work.
// Tests seed it directly and assert against it after running a command.
type fakeState struct {
	guests       map[uuid.UUID]*shared.GuestSnapshot
	rooms        map[uuid.UUID]*room.Room
	reservations map[uuid.UUID]*reservation.Reservation
	bills        map[uuid.UUID]*billing.Bill
	tasks        map[uuid.UUID]*task.Task
	items        map[uuid.UUID]*inventory.Item
	jobs         []*notification.Job
	stayCheckIns []uuid.UUID
	checkOuts    []uuid.UUID
}

func newFakeState() *fakeState {
	return &fakeState{
		guests:       make(map[uuid.UUID]*shared.GuestSnapshot),
		rooms:        make(map[uuid.UUID]*room.Room),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		bills:        make(map[uuid.UUID]*billing.Bill),
		tasks:        make(map[uuid.UUID]*task.Task),
		items:        make(map[uuid.UUID]*inventory.Item),
	}
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// --- unit of work -----------------------------------------------------------

type fakeUoW struct {
	state *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{t.state} }
func (t *fakeTx) Rooms() shared.RoomRepository               { return &fakeRoomRepo{t.state} }
func (t *fakeTx) Guests() shared.GuestRepository             { return &fakeGuestRepo{t.state} }
func (t *fakeTx) Staff() shared.StaffRepository              { return &fakeStaffRepo{t.state} }
func (t *fakeTx) Bills() shared.BillRepository               { return &fakeBillRepo{t.state} }
func (t *fakeTx) Tasks() shared.TaskRepository               { return &fakeTaskRepo{t.state} }
func (t *fakeTx) Feedback() shared.FeedbackRepository        { return &fakeFeedbackRepo{t.state} }
func (t *fakeTx) Inventory() shared.InventoryRepository      { return &fakeInventoryRepo{t.state} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{t.state}
}
func (t *fakeTx) StayRecords() shared.StayRecordRepository { return &fakeStayRecordRepo{t.state} }
func (t *fakeTx) Reads() shared.CommandReads               { return &fakeReads{state: t.state} }
func (t *fakeTx) DB() store.Querier                        { return nil }

// --- command reads ----------------------------------------------------------

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) GuestByID(_ context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	g, ok := r.state.guests[id]
	if !ok {
		return nil, notFoundErr("guest not found")
	}
	return g, nil
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	rm, ok := r.state.rooms[id]
	if !ok {
		return nil, notFoundErr("room not found")
	}
	return &shared.RoomSnapshot{
		ID:               rm.ID(),
		Number:           rm.Number(),
		Status:           rm.Status().String(),
		Capacity:         rm.Capacity(),
		NightlyRateCents: rm.NightlyRate().Cents(),
		IsActive:         rm.IsActive(),
	}, nil
}

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, notFoundErr("reservation not found")
	}
	return &shared.ReservationSnapshot{
		ID:             res.ID(),
		GuestID:        res.GuestID(),
		RoomID:         res.RoomID(),
		AssignedRoomID: res.AssignedRoomID(),
		Status:         res.Status().String(),
		CheckIn:        res.Stay().CheckIn(),
		CheckOut:       res.Stay().CheckOut(),
		IsActive:       res.IsActive(),
	}, nil
}

// --- repositories -----------------------------------------------------------

type fakeReservationRepo struct {
	state *fakeState
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	r.state.reservations[res.ID()] = res
	return res.ID(), nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.state.reservations[res.ID()]; !ok {
		return notFoundErr("reservation not found")
	}
	r.state.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, notFoundErr("reservation not found")
	}
	return res, nil
}

func (r *fakeReservationRepo) HasBlockingOverlap(_ context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	for _, other := range r.state.reservations {
		if excludeID != nil && other.ID() == *excludeID {
			continue
		}
		if !other.IsActive() || !other.Blocks() {
			continue
		}
		if other.EffectiveRoomID() == roomID && other.Stay().Overlaps(stay) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRoomRepo struct {
	state *fakeState
}

func (r *fakeRoomRepo) Create(_ context.Context, rm *room.Room) (uuid.UUID, error) {
	r.state.rooms[rm.ID()] = rm
	return rm.ID(), nil
}

func (r *fakeRoomRepo) Update(_ context.Context, rm *room.Room) error {
	if _, ok := r.state.rooms[rm.ID()]; !ok {
		return notFoundErr("room not found")
	}
	r.state.rooms[rm.ID()] = rm
	return nil
}

func (r *fakeRoomRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.state.rooms[id]
	if !ok {
		return nil, notFoundErr("room not found")
	}
	return rm, nil
}

type fakeGuestRepo struct {
	state *fakeState
}

func (r *fakeGuestRepo) Create(_ context.Context, g *guest.Guest) (uuid.UUID, error) {
	r.state.guests[g.ID()] = &shared.GuestSnapshot{
		ID:       g.ID(),
		Email:    g.Email().String(),
		FullName: g.FirstName() + " " + g.LastName(),
		IsActive: g.IsActive(),
	}
	return g.ID(), nil
}

func (r *fakeGuestRepo) Update(_ context.Context, g *guest.Guest) error {
	if _, ok := r.state.guests[g.ID()]; !ok {
		return notFoundErr("guest not found")
	}
	return nil
}

func (r *fakeGuestRepo) FindByID(_ context.Context, id uuid.UUID) (*guest.Guest, error) {
	return nil, notFoundErr("guest not found")
}

type fakeStaffRepo struct {
	state *fakeState
}

func (r *fakeStaffRepo) Create(_ context.Context, s *staff.Staff) (uuid.UUID, error) {
	return s.ID(), nil
}

func (r *fakeStaffRepo) FindByEmail(_ context.Context, _ string) (*staff.Staff, error) {
	return nil, notFoundErr("staff not found")
}

func (r *fakeStaffRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeBillRepo struct {
	state *fakeState
}

func (r *fakeBillRepo) Create(_ context.Context, b *billing.Bill) (uuid.UUID, error) {
	r.state.bills[b.ID()] = b
	return b.ID(), nil
}

func (r *fakeBillRepo) Save(_ context.Context, b *billing.Bill) error {
	r.state.bills[b.ID()] = b
	return nil
}

func (r *fakeBillRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*billing.Bill, error) {
	b, ok := r.state.bills[id]
	if !ok {
		return nil, notFoundErr("bill not found")
	}
	return b, nil
}

func (r *fakeBillRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) (*billing.Bill, error) {
	for _, b := range r.state.bills {
		if b.ReservationID() == reservationID && b.Status() != billing.StatusVoid {
			return b, nil
		}
	}
	return nil, notFoundErr("bill not found")
}

type fakeTaskRepo struct {
	state *fakeState
}

func (r *fakeTaskRepo) Create(_ context.Context, t *task.Task) (uuid.UUID, error) {
	r.state.tasks[t.ID()] = t
	return t.ID(), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *task.Task) error {
	if _, ok := r.state.tasks[t.ID()]; !ok {
		return notFoundErr("task not found")
	}
	r.state.tasks[t.ID()] = t
	return nil
}

func (r *fakeTaskRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := r.state.tasks[id]
	if !ok {
		return nil, notFoundErr("task not found")
	}
	return t, nil
}

type fakeFeedbackRepo struct {
	state *fakeState
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *feedback.Feedback) (uuid.UUID, error) {
	return f.ID(), nil
}

type fakeInventoryRepo struct {
	state *fakeState
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *inventory.Item) (uuid.UUID, error) {
	r.state.items[item.ID()] = item
	return item.ID(), nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, item *inventory.Item) error {
	if _, ok := r.state.items[item.ID()]; !ok {
		return notFoundErr("inventory item not found")
	}
	r.state.items[item.ID()] = item
	return nil
}

func (r *fakeInventoryRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	item, ok := r.state.items[id]
	if !ok {
		return nil, notFoundErr("inventory item not found")
	}
	return item, nil
}

func (r *fakeInventoryRepo) RecordAdjustment(_ context.Context, _ uuid.UUID, _ int, _ string, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeNotificationRepo struct {
	state *fakeState
}

func (r *fakeNotificationRepo) Enqueue(_ context.Context, job *notification.Job) error {
	r.state.jobs = append(r.state.jobs, job)
	return nil
}

func (r *fakeNotificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]*notification.Job, error) {
	var due []*notification.Job
	for _, job := range r.state.jobs {
		if job.Status() == notification.StatusQueued && !job.ScheduledAt().After(now) {
			due = append(due, job)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *fakeNotificationRepo) Save(_ context.Context, _ *notification.Job) error {
	return nil
}

type fakeStayRecordRepo struct {
	state *fakeState
}

func (r *fakeStayRecordRepo) CreateCheckIn(_ context.Context, reservationID, _, _ uuid.UUID, _ time.Time) (uuid.UUID, error) {
	r.state.stayCheckIns = append(r.state.stayCheckIns, reservationID)
	return uuid.New(), nil
}

func (r *fakeStayRecordRepo) CompleteCheckOut(_ context.Context, reservationID, _ uuid.UUID, _ time.Time) error {
	for _, id := range r.state.stayCheckIns {
		if id == reservationID {
			r.state.checkOuts = append(r.state.checkOuts, reservationID)
			return nil
		}
	}
	return notFoundErr("open stay record not found")
}

// --- fixtures ---------------------------------------------------------------

func seedGuest(state *fakeState) uuid.UUID {
	id := uuid.New()
	state.guests[id] = &shared.GuestSnapshot{
		ID:       id,
		Email:    "guest@example.com",
		FullName: "Ada Lovelace",
		IsActive: true,
	}
	return id
}

func seedRoom(state *fakeState, capacity int, rateCents int64) *room.Room {
	rm, err := room.NewRoom("204", room.TypeDouble, 2, capacity, reservation.MustMoney(rateCents), time.Now())
	if err != nil {
		panic(err)
	}
	state.rooms[rm.ID()] = rm
	return rm
}

func seedStay(checkIn, checkOut string) reservation.StayPeriod {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		panic(err)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		panic(err)
	}
	stay, err := reservation.NewStayPeriod(in, out)
	if err != nil {
		panic(err)
	}
	return stay
}

func seedReservation(state *fakeState, guestID, roomID uuid.UUID, stay reservation.StayPeriod, status reservation.Status, now time.Time) *reservation.Reservation {
	res, err := reservation.NewReservation(
		guestID, roomID, stay, 2,
		reservation.MustMoney(40000), nil,
		reservation.SourceOnline, now,
	)
	if err != nil {
		panic(err)
	}

	switch status {
	case reservation.StatusConfirmed:
		mustDo(res.Confirm(now))
	case reservation.StatusCheckedIn:
		mustDo(res.Confirm(now))
		mustDo(res.CheckIn(now))
	case reservation.StatusCheckedOut:
		mustDo(res.Confirm(now))
		mustDo(res.CheckIn(now))
		mustDo(res.CheckOut(now))
	case reservation.StatusCancelled:
		mustDo(res.Cancel("seeded", now))
	}

	state.reservations[res.ID()] = res
	return res
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// assertErrIs goes through errs.Is because command sentinels are attached
// with errs.Mark, which the stdlib errors.Is does not see.
func assertErrIs(t *testing.T, err error, want error) {
	t.Helper()
	assert.Truef(t, errs.Is(err, want), "expected %q in error chain, got: %v", want, err)
}
