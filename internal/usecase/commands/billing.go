package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBillNotFound      = errs.New("bill not found")
	ErrBillNotEditable   = errs.New("bill is not editable")
	ErrBillNotPayable    = errs.New("bill is not payable")
	ErrPaymentValidation = errs.New("invalid payment")
	ErrLineItemNotFound  = errs.New("line item not found")
)

type AddLineItemInput struct {
	Description    string
	Quantity       int
	UnitPriceCents int64
}

type RecordPaymentInput struct {
	AmountCents int64
	Method      string
	Reference   *string
}

type BillingCommands interface {
	// OpenDraft opens the departure bill for a stay ahead of check-out.
	// Check-out itself opens one automatically when none exists yet.
	OpenDraft(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error)
	AddLineItem(ctx context.Context, billID uuid.UUID, input AddLineItemInput) (uuid.UUID, error)
	RemoveLineItem(ctx context.Context, billID, itemID uuid.UUID) error
	Issue(ctx context.Context, billID uuid.UUID) error
	RecordPayment(ctx context.Context, billID uuid.UUID, input RecordPaymentInput) (uuid.UUID, error)
	Void(ctx context.Context, billID uuid.UUID) error
}

type billingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBillingCommands(uow shared.UnitOfWork, clk clock.Clock) BillingCommands {
	return &billingCommandsImpl{uow: uow, clock: clk}
}

func (c *billingCommandsImpl) OpenDraft(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	var billID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status() != reservation.StatusCheckedIn && res.Status() != reservation.StatusCheckedOut {
			return ErrIllegalTransition
		}

		if _, err := tx.Bills().FindByReservationID(ctx, reservationID); err == nil {
			return ErrBillAlreadyOpen
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		roomSnap, err := tx.Reads().RoomByID(ctx, res.EffectiveRoomID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		billID, err = openDepartureBill(ctx, tx, res.ID(), roomSnap.Number, res.Stay().Nights(), res.TotalAmount(), now)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return billID, nil
}

func (c *billingCommandsImpl) AddLineItem(ctx context.Context, billID uuid.UUID, input AddLineItemInput) (uuid.UUID, error) {
	now := c.clock.Now()

	var itemID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bill, err := findBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		unitPrice, err := reservation.NewMoney(input.UnitPriceCents)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		item, err := bill.AddLineItem(input.Description, input.Quantity, unitPrice, now)
		if err != nil {
			return errs.Mark(err, ErrBillNotEditable)
		}
		itemID = item.ID

		if err := tx.Bills().Save(ctx, bill); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return itemID, nil
}

func (c *billingCommandsImpl) RemoveLineItem(ctx context.Context, billID, itemID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bill, err := findBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		if err := bill.RemoveLineItem(itemID, now); err != nil {
			if errors.Is(err, billing.ErrLineItemNotFound) {
				return ErrLineItemNotFound
			}
			return errs.Mark(err, ErrBillNotEditable)
		}
		if err := tx.Bills().Save(ctx, bill); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

// Issue finalizes the draft and queues the bill notification to the guest.
func (c *billingCommandsImpl) Issue(ctx context.Context, billID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bill, err := findBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		if err := bill.Issue(now); err != nil {
			return errs.Mark(err, ErrBillNotEditable)
		}
		if err := tx.Bills().Save(ctx, bill); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		resSnap, err := tx.Reads().ReservationByID(ctx, bill.ReservationID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		guestSnap, err := tx.Reads().GuestByID(ctx, resSnap.GuestID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		payload, err := json.Marshal(map[string]any{
			"bill_id":        bill.ID(),
			"reservation_id": bill.ReservationID(),
			"total_cents":    bill.Total().Cents(),
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		job, err := notification.NewJob(notification.KindBillIssued, notification.ChannelEmail, guestSnap.Email, payload, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.Notifications().Enqueue(ctx, job); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *billingCommandsImpl) RecordPayment(ctx context.Context, billID uuid.UUID, input RecordPaymentInput) (uuid.UUID, error) {
	now := c.clock.Now()

	method := billing.PaymentMethod(input.Method)
	if !method.IsValid() {
		return uuid.Nil, ErrPaymentValidation
	}

	var paymentID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bill, err := findBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		amount, err := reservation.NewMoney(input.AmountCents)
		if err != nil {
			return errs.Mark(err, ErrPaymentValidation)
		}
		payment, err := bill.RecordPayment(amount, method, input.Reference, now)
		if err != nil {
			if errors.Is(err, billing.ErrNotPayable) {
				return ErrBillNotPayable
			}
			return errs.Mark(err, ErrPaymentValidation)
		}
		paymentID = payment.ID

		if err := tx.Bills().Save(ctx, bill); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return paymentID, nil
}

func (c *billingCommandsImpl) Void(ctx context.Context, billID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bill, err := findBill(ctx, tx, billID)
		if err != nil {
			return err
		}

		if err := bill.Void(now); err != nil {
			return errs.Mark(err, ErrBillNotEditable)
		}
		if err := tx.Bills().Save(ctx, bill); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

// openDepartureBill creates the draft bill carrying the room charge at
// check-out. An existing bill for the reservation is reused as-is.
func openDepartureBill(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, roomNumber string, nights int, roomCharge reservation.Money, now time.Time) (uuid.UUID, error) {
	existing, err := tx.Bills().FindByReservationID(ctx, reservationID)
	if err == nil {
		return existing.ID(), nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperation)
	}

	bill := billing.NewBill(reservationID, now)
	description := fmt.Sprintf("Room %s, %d night(s)", roomNumber, nights)
	if _, err := bill.AddLineItem(description, 1, roomCharge, now); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	billID, err := tx.Bills().Create(ctx, bill)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return billID, nil
}

func findBill(ctx context.Context, tx shared.Tx, id uuid.UUID) (*billing.Bill, error) {
	bill, err := tx.Bills().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return bill, nil
}
