//go:build unit

package billing_test

import (
	"testing"
	"time"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedBill(t *testing.T, now time.Time) *billing.Bill {
	t.Helper()
	b := billing.NewBill(uuid.New(), now)
	_, err := b.AddLineItem("Room charge", 4, reservation.MustMoney(10000), now)
	require.NoError(t, err)
	_, err = b.AddLineItem("Minibar", 2, reservation.MustMoney(750), now)
	require.NoError(t, err)
	require.NoError(t, b.Issue(now))
	return b
}

func TestBillLineItems(t *testing.T) {
	now := time.Now()

	t.Run("total is computed from items", func(t *testing.T) {
		b := issuedBill(t, now)
		assert.Equal(t, int64(41500), b.Total().Cents())
		assert.Equal(t, int64(41500), b.Balance().Cents())
	})

	t.Run("items are frozen after issue", func(t *testing.T) {
		b := issuedBill(t, now)
		_, err := b.AddLineItem("Late charge", 1, reservation.MustMoney(100), now)
		require.ErrorIs(t, err, billing.ErrNotDraft)
	})

	t.Run("draft item can be removed", func(t *testing.T) {
		b := billing.NewBill(uuid.New(), now)
		item, err := b.AddLineItem("Room charge", 1, reservation.MustMoney(5000), now)
		require.NoError(t, err)
		require.NoError(t, b.RemoveLineItem(item.ID, now))
		assert.Equal(t, int64(0), b.Total().Cents())
	})
}

func TestBillPayments(t *testing.T) {
	now := time.Now()

	t.Run("partial payment moves to partially_paid", func(t *testing.T) {
		b := issuedBill(t, now)
		_, err := b.RecordPayment(reservation.MustMoney(20000), billing.MethodCard, nil, now)
		require.NoError(t, err)
		assert.Equal(t, billing.StatusPartiallyPaid, b.Status())
		assert.Equal(t, int64(21500), b.Balance().Cents())
	})

	t.Run("settling the balance moves to paid", func(t *testing.T) {
		b := issuedBill(t, now)
		_, err := b.RecordPayment(reservation.MustMoney(41500), billing.MethodBankTransfer, nil, now)
		require.NoError(t, err)
		assert.Equal(t, billing.StatusPaid, b.Status())
		assert.Equal(t, int64(0), b.Balance().Cents())
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		b := issuedBill(t, now)
		_, err := b.RecordPayment(reservation.MustMoney(50000), billing.MethodCash, nil, now)
		require.ErrorIs(t, err, billing.ErrOverpayment)
		assert.Equal(t, billing.StatusIssued, b.Status())
	})

	t.Run("draft bill does not accept payments", func(t *testing.T) {
		b := billing.NewBill(uuid.New(), now)
		_, err := b.RecordPayment(reservation.MustMoney(100), billing.MethodCash, nil, now)
		require.ErrorIs(t, err, billing.ErrNotPayable)
	})

	t.Run("paid bill cannot be voided", func(t *testing.T) {
		b := issuedBill(t, now)
		_, err := b.RecordPayment(reservation.MustMoney(41500), billing.MethodCard, nil, now)
		require.NoError(t, err)
		require.ErrorIs(t, b.Void(now), billing.ErrInvalidTransition)
	})
}
