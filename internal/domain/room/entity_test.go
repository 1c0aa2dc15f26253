//go:build unit

package room_test

import (
	"testing"
	"time"

	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T) *room.Room {
	t.Helper()
	r, err := room.NewRoom("101", room.TypeDouble, 1, 2, reservation.MustMoney(12000), time.Now())
	require.NoError(t, err)
	return r
}

func TestNewRoom(t *testing.T) {
	t.Run("starts available and active", func(t *testing.T) {
		r := newTestRoom(t)
		assert.Equal(t, room.StatusAvailable, r.Status())
		assert.True(t, r.IsActive())
	})

	t.Run("rejects blank number", func(t *testing.T) {
		_, err := room.NewRoom("   ", room.TypeSingle, 1, 1, reservation.MustMoney(8000), time.Now())
		require.ErrorIs(t, err, room.ErrEmptyNumber)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := room.NewRoom("102", room.RoomType("penthouse"), 1, 1, reservation.MustMoney(8000), time.Now())
		require.ErrorIs(t, err, room.ErrInvalidRoomType)
	})
}

func TestRoomStatusTransitions(t *testing.T) {
	now := time.Now()

	t.Run("cleaning flows back to available", func(t *testing.T) {
		r := newTestRoom(t)
		require.NoError(t, r.ChangeStatus(room.StatusOccupied, nil, now))
		require.NoError(t, r.ChangeStatus(room.StatusCleaning, nil, now))
		require.NoError(t, r.ChangeStatus(room.StatusAvailable, nil, now))
	})

	t.Run("occupied cannot jump directly to available", func(t *testing.T) {
		r := newTestRoom(t)
		require.NoError(t, r.ChangeStatus(room.StatusOccupied, nil, now))
		err := r.ChangeStatus(room.StatusAvailable, nil, now)
		require.ErrorIs(t, err, room.ErrInvalidTransition)
	})

	t.Run("out_of_service withdraws room from sale", func(t *testing.T) {
		r := newTestRoom(t)
		reason := "flood damage"
		require.NoError(t, r.ChangeStatus(room.StatusOutOfService, &reason, now))
		assert.False(t, r.Status().Sellable())
		require.NotNil(t, r.StatusReason())
	})

	t.Run("occupied room remains sellable for future dates", func(t *testing.T) {
		r := newTestRoom(t)
		require.NoError(t, r.ChangeStatus(room.StatusOccupied, nil, now))
		assert.True(t, r.Status().Sellable())
	})
}
