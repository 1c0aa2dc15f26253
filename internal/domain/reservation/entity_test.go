//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hotel-backoffice/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	stay, err := reservation.NewStayPeriod(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	res, err := reservation.NewReservation(
		uuid.New(), uuid.New(), stay, 2,
		reservation.MustMoney(40000), nil,
		reservation.SourceOnline, time.Now(),
	)
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	t.Run("starts pending and active", func(t *testing.T) {
		res := newTestReservation(t)
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.IsActive())
		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Nil(t, res.ConfirmedAt())
	})

	t.Run("rejects non-positive guest count", func(t *testing.T) {
		stay, _ := reservation.NewStayPeriod(
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		)
		_, err := reservation.NewReservation(
			uuid.New(), uuid.New(), stay, 0,
			reservation.MustMoney(100), nil, reservation.SourcePhone, time.Now(),
		)
		require.ErrorIs(t, err, reservation.ErrNonPositiveGuests)
	})

	t.Run("rejects deposit over total", func(t *testing.T) {
		stay, _ := reservation.NewStayPeriod(
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		)
		deposit := reservation.MustMoney(500)
		_, err := reservation.NewReservation(
			uuid.New(), uuid.New(), stay, 1,
			reservation.MustMoney(100), &deposit, reservation.SourceWalkIn, time.Now(),
		)
		require.ErrorIs(t, err, reservation.ErrDepositExceedsTotal)
	})

	t.Run("rejects unknown booking source", func(t *testing.T) {
		stay, _ := reservation.NewStayPeriod(
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		)
		_, err := reservation.NewReservation(
			uuid.New(), uuid.New(), stay, 1,
			reservation.MustMoney(100), nil, reservation.Source("carrier_pigeon"), time.Now(),
		)
		require.ErrorIs(t, err, reservation.ErrInvalidSource)
	})
}

func TestLifecycleTransitions(t *testing.T) {
	now := time.Now()

	t.Run("pending to confirmed records timestamp", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		require.NotNil(t, res.ConfirmedAt())
	})

	t.Run("confirming twice fails without mutating state", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		first := *res.ConfirmedAt()

		err := res.Confirm(now.Add(time.Hour))
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.Equal(t, first, *res.ConfirmedAt())
	})

	t.Run("full happy path to checked_out", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		require.NoError(t, res.CheckIn(now))
		require.NoError(t, res.CheckOut(now))
		assert.Equal(t, reservation.StatusCheckedOut, res.Status())
		assert.True(t, res.Status().IsTerminal())
	})

	t.Run("cancel records reason and timestamp", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Cancel("guest request", now))
		assert.Equal(t, reservation.StatusCancelled, res.Status())
		require.NotNil(t, res.CancellationReason())
		assert.Equal(t, "guest request", *res.CancellationReason())
		require.NotNil(t, res.CancelledAt())
	})

	t.Run("cancelled reservation cannot be confirmed", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Cancel("guest request", now))
		require.ErrorIs(t, res.Confirm(now), reservation.ErrInvalidTransition)
	})

	t.Run("no_show only reachable from confirmed", func(t *testing.T) {
		res := newTestReservation(t)
		require.ErrorIs(t, res.MarkNoShow(now), reservation.ErrInvalidTransition)
		require.NoError(t, res.Confirm(now))
		require.NoError(t, res.MarkNoShow(now))
	})

	t.Run("checked_out is immutable", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		require.NoError(t, res.CheckIn(now))
		require.NoError(t, res.CheckOut(now))

		require.ErrorIs(t, res.Cancel("too late", now), reservation.ErrInvalidTransition)
		require.ErrorIs(t, res.ChangeGuests(3, now), reservation.ErrImmutable)
	})

	t.Run("generic transition rejects illegal jumps", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		require.NoError(t, res.CheckIn(now))
		require.NoError(t, res.CheckOut(now))

		err := res.TransitionTo(reservation.StatusPending, now)
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("generic transition rejects unknown status", func(t *testing.T) {
		res := newTestReservation(t)
		err := res.TransitionTo(reservation.Status("teleported"), now)
		require.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func TestSoftDelete(t *testing.T) {
	now := time.Now()

	t.Run("pending reservation can be deleted", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.SoftDelete("duplicate booking", now))
		assert.False(t, res.IsActive())
		require.NotNil(t, res.DeletionReason())
	})

	t.Run("cancelled reservation can be deleted", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Cancel("guest request", now))
		require.NoError(t, res.SoftDelete("cleanup", now))
		assert.False(t, res.IsActive())
	})

	t.Run("checked_in reservation cannot be deleted", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.Confirm(now))
		require.NoError(t, res.CheckIn(now))

		require.ErrorIs(t, res.SoftDelete("oops", now), reservation.ErrNotDeletable)
		assert.True(t, res.IsActive())
	})

	t.Run("double delete fails", func(t *testing.T) {
		res := newTestReservation(t)
		require.NoError(t, res.SoftDelete("dup", now))
		require.ErrorIs(t, res.SoftDelete("again", now), reservation.ErrAlreadyDeleted)
	})
}

func TestRoomAssignment(t *testing.T) {
	now := time.Now()

	t.Run("effective room defaults to booked room", func(t *testing.T) {
		res := newTestReservation(t)
		assert.Equal(t, res.RoomID(), res.EffectiveRoomID())
	})

	t.Run("assignment overrides effective room", func(t *testing.T) {
		res := newTestReservation(t)
		override := uuid.New()
		require.NoError(t, res.AssignRoom(override, now))
		assert.Equal(t, override, res.EffectiveRoomID())
		assert.NotEqual(t, res.RoomID(), res.EffectiveRoomID())
	})
}

func TestBlocks(t *testing.T) {
	now := time.Now()

	res := newTestReservation(t)
	assert.False(t, res.Blocks(), "pending reservations are provisional holds")

	require.NoError(t, res.Confirm(now))
	assert.True(t, res.Blocks())

	require.NoError(t, res.CheckIn(now))
	assert.True(t, res.Blocks())

	require.NoError(t, res.CheckOut(now))
	assert.False(t, res.Blocks())
}
