//go:build unit

package commands_test

import (
	"context"
	"testing"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingCommands(state *fakeState) commands.BillingCommands {
	return commands.NewBillingCommands(&fakeUoW{state: state}, clock.NewMockClock(testNow))
}

func seedBill(state *fakeState, reservationID uuid.UUID) *billing.Bill {
	bill := billing.NewBill(reservationID, testNow)
	state.bills[bill.ID()] = bill
	return bill
}

func TestBillingOpenDraft(t *testing.T) {
	t.Run("opens a draft carrying the room charge", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusCheckedIn, testNow)
		cmds := newBillingCommands(state)

		billID, err := cmds.OpenDraft(context.Background(), res.ID())
		require.NoError(t, err)

		bill := state.bills[billID]
		require.NotNil(t, bill)
		assert.Equal(t, billing.StatusDraft, bill.Status())
		assert.Equal(t, res.ID(), bill.ReservationID())
		require.Len(t, bill.LineItems(), 1)
		assert.Equal(t, res.TotalAmount().Cents(), bill.Total().Cents())
	})

	t.Run("refuses a second bill for the same stay", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusCheckedIn, testNow)
		cmds := newBillingCommands(state)

		_, err := cmds.OpenDraft(context.Background(), res.ID())
		require.NoError(t, err)
		_, err = cmds.OpenDraft(context.Background(), res.ID())
		assertErrIs(t, err, commands.ErrBillAlreadyOpen)
	})

	t.Run("rejects a stay that has not checked in", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusPending, testNow)
		cmds := newBillingCommands(state)

		_, err := cmds.OpenDraft(context.Background(), res.ID())
		assertErrIs(t, err, commands.ErrIllegalTransition)
	})

	t.Run("rejects an unknown reservation", func(t *testing.T) {
		state := newFakeState()
		cmds := newBillingCommands(state)

		_, err := cmds.OpenDraft(context.Background(), uuid.New())
		assertErrIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestBillingAddLineItem(t *testing.T) {
	t.Run("adds a line to a draft bill", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		cmds := newBillingCommands(state)

		itemID, err := cmds.AddLineItem(context.Background(), bill.ID(), commands.AddLineItemInput{
			Description:    "Minibar",
			Quantity:       2,
			UnitPriceCents: 900,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, itemID)
		assert.Equal(t, int64(1800), state.bills[bill.ID()].Total().Cents())
	})

	t.Run("rejects lines on an issued bill", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		_, err := bill.AddLineItem("Room charge", 1, reservation.MustMoney(30000), testNow)
		require.NoError(t, err)
		require.NoError(t, bill.Issue(testNow))
		cmds := newBillingCommands(state)

		_, err = cmds.AddLineItem(context.Background(), bill.ID(), commands.AddLineItemInput{
			Description:    "Late fee",
			Quantity:       1,
			UnitPriceCents: 5000,
		})
		assertErrIs(t, err, commands.ErrBillNotEditable)
	})

	t.Run("rejects an unknown bill", func(t *testing.T) {
		state := newFakeState()
		cmds := newBillingCommands(state)

		_, err := cmds.AddLineItem(context.Background(), uuid.New(), commands.AddLineItemInput{
			Description:    "Minibar",
			Quantity:       1,
			UnitPriceCents: 900,
		})
		assertErrIs(t, err, commands.ErrBillNotFound)
	})
}

func TestBillingRemoveLineItem(t *testing.T) {
	t.Run("removes an existing line", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		item, err := bill.AddLineItem("Minibar", 1, reservation.MustMoney(900), testNow)
		require.NoError(t, err)
		cmds := newBillingCommands(state)

		require.NoError(t, cmds.RemoveLineItem(context.Background(), bill.ID(), item.ID))
		assert.Empty(t, state.bills[bill.ID()].LineItems())
	})

	t.Run("reports a missing line", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		cmds := newBillingCommands(state)

		err := cmds.RemoveLineItem(context.Background(), bill.ID(), uuid.New())
		assertErrIs(t, err, commands.ErrLineItemNotFound)
	})
}

func TestBillingIssue(t *testing.T) {
	t.Run("issues the bill and notifies the guest", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusCheckedOut, testNow)
		bill := seedBill(state, res.ID())
		_, err := bill.AddLineItem("Room charge", 1, reservation.MustMoney(45000), testNow)
		require.NoError(t, err)
		cmds := newBillingCommands(state)

		require.NoError(t, cmds.Issue(context.Background(), bill.ID()))

		assert.Equal(t, billing.StatusIssued, state.bills[bill.ID()].Status())
		require.Len(t, state.jobs, 1)
		assert.Equal(t, notification.KindBillIssued, state.jobs[0].Kind())
		assert.Equal(t, "guest@example.com", state.jobs[0].Recipient())
	})

	t.Run("refuses to issue twice", func(t *testing.T) {
		state := newFakeState()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusCheckedOut, testNow)
		bill := seedBill(state, res.ID())
		_, err := bill.AddLineItem("Room charge", 1, reservation.MustMoney(45000), testNow)
		require.NoError(t, err)
		cmds := newBillingCommands(state)

		require.NoError(t, cmds.Issue(context.Background(), bill.ID()))
		err = cmds.Issue(context.Background(), bill.ID())
		assertErrIs(t, err, commands.ErrBillNotEditable)
	})
}

func TestBillingRecordPayment(t *testing.T) {
	issuedBill := func(t *testing.T, state *fakeState, totalCents int64) *billing.Bill {
		t.Helper()
		guestID := seedGuest(state)
		rm := seedRoom(state, 2, 15000)
		res := seedReservation(state, guestID, rm.ID(), seedStay("2026-03-01", "2026-03-04"), reservation.StatusCheckedOut, testNow)
		bill := seedBill(state, res.ID())
		_, err := bill.AddLineItem("Room charge", 1, reservation.MustMoney(totalCents), testNow)
		require.NoError(t, err)
		require.NoError(t, bill.Issue(testNow))
		return bill
	}

	t.Run("partial payment leaves the bill partially paid", func(t *testing.T) {
		state := newFakeState()
		bill := issuedBill(t, state, 45000)
		cmds := newBillingCommands(state)

		_, err := cmds.RecordPayment(context.Background(), bill.ID(), commands.RecordPaymentInput{
			AmountCents: 20000,
			Method:      "card",
		})
		require.NoError(t, err)
		assert.Equal(t, billing.StatusPartiallyPaid, state.bills[bill.ID()].Status())
	})

	t.Run("full payment settles the bill", func(t *testing.T) {
		state := newFakeState()
		bill := issuedBill(t, state, 45000)
		cmds := newBillingCommands(state)

		_, err := cmds.RecordPayment(context.Background(), bill.ID(), commands.RecordPaymentInput{
			AmountCents: 45000,
			Method:      "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, billing.StatusPaid, state.bills[bill.ID()].Status())
	})

	t.Run("rejects payments against a draft", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		cmds := newBillingCommands(state)

		_, err := cmds.RecordPayment(context.Background(), bill.ID(), commands.RecordPaymentInput{
			AmountCents: 1000,
			Method:      "card",
		})
		assertErrIs(t, err, commands.ErrBillNotPayable)
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		state := newFakeState()
		bill := issuedBill(t, state, 45000)
		cmds := newBillingCommands(state)

		_, err := cmds.RecordPayment(context.Background(), bill.ID(), commands.RecordPaymentInput{
			AmountCents: 1000,
			Method:      "barter",
		})
		assertErrIs(t, err, commands.ErrPaymentValidation)
	})
}

func TestBillingVoid(t *testing.T) {
	t.Run("voids a draft bill", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		cmds := newBillingCommands(state)

		require.NoError(t, cmds.Void(context.Background(), bill.ID()))
		assert.Equal(t, billing.StatusVoid, state.bills[bill.ID()].Status())
	})

	t.Run("refuses to void a paid bill", func(t *testing.T) {
		state := newFakeState()
		bill := seedBill(state, uuid.New())
		_, err := bill.AddLineItem("Room charge", 1, reservation.MustMoney(100), testNow)
		require.NoError(t, err)
		require.NoError(t, bill.Issue(testNow))
		_, err = bill.RecordPayment(reservation.MustMoney(100), billing.MethodCash, nil, testNow)
		require.NoError(t, err)
		cmds := newBillingCommands(state)

		err = cmds.Void(context.Background(), bill.ID())
		assertErrIs(t, err, commands.ErrBillNotEditable)
	})
}
