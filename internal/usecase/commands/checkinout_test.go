//go:build unit

package commands_test

import (
	"context"
	"testing"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckInOutCommands(state *fakeState) commands.CheckInOutCommands {
	return commands.NewCheckInOutCommands(&fakeUoW{state: state}, clock.NewMockClock(testNow))
}

func TestCheckIn(t *testing.T) {
	t.Run("transitions the reservation and occupies the room", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusConfirmed, testNow)
		staffID := uuid.New()
		cmds := newCheckInOutCommands(state)

		require.NoError(t, cmds.CheckIn(context.Background(), res.ID(), staffID))

		assert.Equal(t, reservation.StatusCheckedIn, state.reservations[res.ID()].Status())
		assert.Equal(t, room.StatusOccupied, state.rooms[rm.ID()].Status())
		assert.Contains(t, state.stayCheckIns, res.ID())
	})

	t.Run("rejects check-in from pending", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusPending, testNow)
		cmds := newCheckInOutCommands(state)

		err := cmds.CheckIn(context.Background(), res.ID(), uuid.New())
		assertErrIs(t, err, commands.ErrIllegalTransition)
	})

	t.Run("rejects check-in when the room cannot be occupied", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		require.NoError(t, rm.ChangeStatus(room.StatusOutOfService, ptrTo("burst pipe"), testNow))
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusConfirmed, testNow)
		cmds := newCheckInOutCommands(state)

		err := cmds.CheckIn(context.Background(), res.ID(), uuid.New())
		assertErrIs(t, err, commands.ErrRoomNotReady)
	})
}

func TestCheckOut(t *testing.T) {
	checkIn := func(t *testing.T, state *fakeState, res *reservation.Reservation, staffID uuid.UUID) {
		t.Helper()
		require.NoError(t, newCheckInOutCommands(state).CheckIn(context.Background(), res.ID(), staffID))
	}

	t.Run("completes the stay, opens a bill and queues housekeeping", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusConfirmed, testNow)
		staffID := uuid.New()
		cmds := newCheckInOutCommands(state)
		checkIn(t, state, res, staffID)

		billID, err := cmds.CheckOut(context.Background(), res.ID(), staffID)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCheckedOut, state.reservations[res.ID()].Status())
		assert.Equal(t, room.StatusCleaning, state.rooms[rm.ID()].Status())
		assert.Contains(t, state.checkOuts, res.ID())

		bill := state.bills[billID]
		require.NotNil(t, bill)
		assert.Equal(t, billing.StatusDraft, bill.Status())
		assert.Equal(t, res.ID(), bill.ReservationID())
		require.Len(t, bill.LineItems(), 1)
		assert.Equal(t, res.TotalAmount().Cents(), bill.Total().Cents())

		var cleanup *task.Task
		for _, tk := range state.tasks {
			cleanup = tk
		}
		require.NotNil(t, cleanup, "housekeeping task queued")
		assert.Equal(t, task.KindHousekeeping, cleanup.Kind())
		assert.Equal(t, task.PriorityHigh, cleanup.Priority())
		assert.Equal(t, rm.ID(), cleanup.RoomID())
	})

	t.Run("rejects check-out before check-in", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusConfirmed, testNow)
		cmds := newCheckInOutCommands(state)

		_, err := cmds.CheckOut(context.Background(), res.ID(), uuid.New())
		assertErrIs(t, err, commands.ErrIllegalTransition)
	})

	t.Run("reuses an existing draft bill for the reservation", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusConfirmed, testNow)
		staffID := uuid.New()
		cmds := newCheckInOutCommands(state)
		checkIn(t, state, res, staffID)

		existing := billing.NewBill(res.ID(), testNow)
		state.bills[existing.ID()] = existing

		billID, err := cmds.CheckOut(context.Background(), res.ID(), staffID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID(), billID)
		assert.Len(t, state.bills, 1)
	})
}
