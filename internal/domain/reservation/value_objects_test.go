//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hotel-backoffice/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func stay(t *testing.T, in, out int) reservation.StayPeriod {
	t.Helper()
	p, err := reservation.NewStayPeriod(day(in), day(out))
	require.NoError(t, err)
	return p
}

func TestNewStayPeriod(t *testing.T) {
	t.Run("rejects zero-length stay", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(day(1), day(1))
		require.ErrorIs(t, err, reservation.ErrInvalidStay)
	})

	t.Run("rejects inverted dates", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(day(5), day(1))
		require.ErrorIs(t, err, reservation.ErrInvalidStay)
	})

	t.Run("normalizes clock time to midnight UTC", func(t *testing.T) {
		p, err := reservation.NewStayPeriod(
			time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC),
			time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		want := stay(t, 1, 3)
		if diff := cmp.Diff(want.String(), p.String()); diff != "" {
			t.Errorf("stay period mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 2, p.Nights())
	})
}

func TestStayPeriodOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    reservation.StayPeriod
		b    reservation.StayPeriod
		want bool
	}{
		{"identical ranges", stay(t, 1, 5), stay(t, 1, 5), true},
		{"partial overlap at tail", stay(t, 1, 5), stay(t, 4, 8), true},
		{"partial overlap at head", stay(t, 4, 8), stay(t, 1, 5), true},
		{"contained range", stay(t, 1, 10), stay(t, 3, 5), true},
		{"containing range", stay(t, 3, 5), stay(t, 1, 10), true},
		{"back-to-back checkout equals checkin", stay(t, 1, 5), stay(t, 5, 8), false},
		{"back-to-back reversed", stay(t, 5, 8), stay(t, 1, 5), false},
		{"disjoint ranges", stay(t, 1, 3), stay(t, 10, 12), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
		})
	}
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := reservation.NewMoney(-1)
		require.Error(t, err)
	})

	t.Run("arithmetic", func(t *testing.T) {
		a := reservation.MustMoney(1000)
		b := reservation.MustMoney(400)
		assert.Equal(t, int64(1400), a.Add(b).Cents())
		assert.Equal(t, int64(600), a.Sub(b).Cents())
		assert.True(t, b.LessThan(a))
	})
}

func TestStatusTables(t *testing.T) {
	t.Run("all six statuses are valid", func(t *testing.T) {
		for _, s := range []reservation.Status{
			reservation.StatusPending, reservation.StatusConfirmed,
			reservation.StatusCheckedIn, reservation.StatusCheckedOut,
			reservation.StatusCancelled, reservation.StatusNoShow,
		} {
			assert.True(t, s.IsValid(), s.String())
		}
		assert.False(t, reservation.Status("waitlisted").IsValid())
	})

	t.Run("only confirmed and checked_in block", func(t *testing.T) {
		assert.True(t, reservation.StatusConfirmed.Blocks())
		assert.True(t, reservation.StatusCheckedIn.Blocks())
		assert.False(t, reservation.StatusPending.Blocks())
		assert.False(t, reservation.StatusCheckedOut.Blocks())
		assert.False(t, reservation.StatusCancelled.Blocks())
		assert.False(t, reservation.StatusNoShow.Blocks())
	})
}
