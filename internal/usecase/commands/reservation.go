package commands

import (
	"context"
	"encoding/json"
	"time"

	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/observability"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/pkg/patch"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrGuestNotFound       = errs.New("guest not found")
	ErrRoomNotFound        = errs.New("room not found")
	ErrRoomNotSellable     = errs.New("room is not sellable")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrRoomUnavailable     = errs.New("room is not available for the requested stay")
	ErrCapacityExceeded    = errs.New("party exceeds room capacity")
	ErrInvalidStay         = errs.New("invalid stay period")
	ErrDomainValidation    = errs.New("domain validation error")
	ErrIllegalTransition   = errs.New("illegal status transition")
	ErrNotDeletable        = errs.New("reservation cannot be deleted")
	ErrDatabaseOperation   = errs.New("database operation failed")
)

type CreateReservationInput struct {
	GuestID            uuid.UUID
	RoomID             uuid.UUID
	CheckIn            time.Time
	CheckOut           time.Time
	NumberOfGuests     int
	TotalAmountCents   *int64
	DepositAmountCents *int64
	Source             string
}

type UpdateReservationInput struct {
	RoomID             *uuid.UUID
	CheckIn            *time.Time
	CheckOut           *time.Time
	NumberOfGuests     *int
	TotalAmountCents   *int64
	DepositAmountCents *int64
}

type ReservationCommands interface {
	Create(ctx context.Context, input CreateReservationInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateReservationInput) error
	Confirm(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, next string) error
	AssignRoom(ctx context.Context, id, roomID uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID, reason string) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk}
}

// Create books a new pending reservation after checking the requested stay
// against blocking (confirmed/checked-in) reservations. Pending holds do not
// block each other; Confirm re-checks and the exclusion constraint closes
// the remaining race.
func (c *reservationCommandsImpl) Create(ctx context.Context, input CreateReservationInput) (uuid.UUID, error) {
	now := c.clock.Now()

	stay, err := reservation.NewStayPeriod(input.CheckIn, input.CheckOut)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidStay)
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		guestSnap, err := tx.Reads().GuestByID(ctx, input.GuestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrGuestNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if !guestSnap.IsActive {
			return ErrGuestNotFound
		}

		roomSnap, err := tx.Reads().RoomByID(ctx, input.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if !roomSnap.IsActive || roomSnap.Status == "out_of_service" {
			return ErrRoomNotSellable
		}
		if input.NumberOfGuests > roomSnap.Capacity {
			return ErrCapacityExceeded
		}

		overlap, err := tx.Reservations().HasBlockingOverlap(ctx, input.RoomID, stay, nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if overlap {
			observability.AvailabilityConflicts.Inc()
			return ErrRoomUnavailable
		}

		total := roomSnap.NightlyRateCents * int64(stay.Nights())
		if input.TotalAmountCents != nil {
			total = *input.TotalAmountCents
		}
		totalAmount, err := reservation.NewMoney(total)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		deposit, err := optionalMoney(input.DepositAmountCents)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		res, err := reservation.NewReservation(
			input.GuestID, input.RoomID, stay, input.NumberOfGuests,
			totalAmount, deposit, reservation.Source(input.Source), now,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		reservationID, err = tx.Reservations().Create(ctx, res)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reservationID, nil
}

// Confirm re-checks availability under the transaction and then transitions.
// The partial exclusion constraint on blocking stays closes the remaining
// race between the check and the write.
func (c *reservationCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		overlap, err := tx.Reservations().HasBlockingOverlap(ctx, res.EffectiveRoomID(), res.Stay(), ptrTo(res.ID()))
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if overlap {
			observability.AvailabilityConflicts.Inc()
			return ErrRoomUnavailable
		}

		from := res.Status()
		if err := res.Confirm(now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				observability.AvailabilityConflicts.Inc()
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		guestSnap, err := tx.Reads().GuestByID(ctx, res.GuestID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		observability.ObserveTransition(from.String(), res.Status().String())
		return enqueueReservationNotification(ctx, tx, notification.KindReservationConfirmed, res.ID(), guestSnap.Email, now)
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.Cancel(reason, now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		guestSnap, err := tx.Reads().GuestByID(ctx, res.GuestID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		observability.ObserveTransition(from.String(), res.Status().String())
		return enqueueReservationNotification(ctx, tx, notification.KindReservationCancelled, res.ID(), guestSnap.Email, now)
	})
}

func (c *reservationCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.MarkNoShow(now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		observability.ObserveTransition(from.String(), res.Status().String())
		return nil
	})
}

// UpdateStatus is the generic transition endpoint; it accepts exactly the
// edges the lifecycle table allows and nothing else.
func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, next string) error {
	target := reservation.Status(next)
	if !target.IsValid() {
		return ErrIllegalTransition
	}

	switch target {
	case reservation.StatusConfirmed:
		return c.Confirm(ctx, id)
	case reservation.StatusCancelled:
		return c.Cancel(ctx, id, "")
	case reservation.StatusNoShow:
		return c.MarkNoShow(ctx, id)
	}

	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.TransitionTo(target, now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		observability.ObserveTransition(from.String(), target.String())
		return nil
	})
}

// Update edits booking details. When the stay or room changes the overlap
// check re-runs against the merged values, excluding the reservation itself.
func (c *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, input UpdateReservationInput) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.CheckIn != nil || input.CheckOut != nil {
			checkIn := patch.Coalesce(input.CheckIn, res.Stay().CheckIn())
			checkOut := patch.Coalesce(input.CheckOut, res.Stay().CheckOut())
			stay, err := reservation.NewStayPeriod(checkIn, checkOut)
			if err != nil {
				return errs.Mark(err, ErrInvalidStay)
			}
			if err := res.ChangeStay(stay, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if input.RoomID != nil {
			roomSnap, err := tx.Reads().RoomByID(ctx, *input.RoomID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrRoomNotFound
				}
				return errs.Mark(err, ErrDatabaseOperation)
			}
			if !roomSnap.IsActive || roomSnap.Status == "out_of_service" {
				return ErrRoomNotSellable
			}
			if err := res.ChangeRoom(*input.RoomID, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if input.NumberOfGuests != nil {
			if err := res.ChangeGuests(*input.NumberOfGuests, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if input.TotalAmountCents != nil || input.DepositAmountCents != nil {
			total := res.TotalAmount()
			if input.TotalAmountCents != nil {
				total, err = reservation.NewMoney(*input.TotalAmountCents)
				if err != nil {
					return errs.Mark(err, ErrDomainValidation)
				}
			}
			deposit := res.DepositAmount()
			if input.DepositAmountCents != nil {
				deposit, err = optionalMoney(input.DepositAmountCents)
				if err != nil {
					return errs.Mark(err, ErrDomainValidation)
				}
			}
			if err := res.ChangeAmounts(total, deposit, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if input.CheckIn != nil || input.CheckOut != nil || input.RoomID != nil {
			overlap, err := tx.Reservations().HasBlockingOverlap(ctx, res.EffectiveRoomID(), res.Stay(), ptrTo(res.ID()))
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperation)
			}
			if overlap {
				observability.AvailabilityConflicts.Inc()
				return ErrRoomUnavailable
			}
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				observability.AvailabilityConflicts.Inc()
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) AssignRoom(ctx context.Context, id, roomID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		roomSnap, err := tx.Reads().RoomByID(ctx, roomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if !roomSnap.IsActive || roomSnap.Status == "out_of_service" {
			return ErrRoomNotSellable
		}

		if err := res.AssignRoom(roomID, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if res.Blocks() {
			overlap, err := tx.Reservations().HasBlockingOverlap(ctx, roomID, res.Stay(), ptrTo(res.ID()))
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperation)
			}
			if overlap {
				observability.AvailabilityConflicts.Inc()
				return ErrRoomUnavailable
			}
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				observability.AvailabilityConflicts.Inc()
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) SoftDelete(ctx context.Context, id uuid.UUID, reason string) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := res.SoftDelete(reason, now); err != nil {
			return errs.Mark(err, ErrNotDeletable)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func findReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !res.IsActive() {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func enqueueReservationNotification(ctx context.Context, tx shared.Tx, kind notification.Kind, reservationID uuid.UUID, recipient string, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}

	job, err := notification.NewJob(kind, notification.ChannelEmail, recipient, payload, now)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	if err := tx.Notifications().Enqueue(ctx, job); err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	return nil
}

func optionalMoney(cents *int64) (*reservation.Money, error) {
	if cents == nil {
		return nil, nil
	}
	m, err := reservation.NewMoney(*cents)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func ptrTo[T any](v T) *T {
	return &v
}
