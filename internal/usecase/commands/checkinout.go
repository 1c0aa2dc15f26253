package commands

import (
	"context"
	"fmt"

	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/observability"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotReady    = errs.New("room is not ready for check-in")
	ErrBillAlreadyOpen = errs.New("reservation already has a bill")
)

type CheckInOutCommands interface {
	CheckIn(ctx context.Context, reservationID, staffID uuid.UUID) error
	// CheckOut completes the stay, sends the room to cleaning, queues a
	// housekeeping task and opens a draft bill carrying the room charge.
	CheckOut(ctx context.Context, reservationID, staffID uuid.UUID) (uuid.UUID, error)
}

type checkInOutCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCheckInOutCommands(uow shared.UnitOfWork, clk clock.Clock) CheckInOutCommands {
	return &checkInOutCommandsImpl{uow: uow, clock: clk}
}

func (c *checkInOutCommandsImpl) CheckIn(ctx context.Context, reservationID, staffID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.CheckIn(now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}

		rm, err := tx.Rooms().FindByIDForUpdate(ctx, res.EffectiveRoomID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := rm.ChangeStatus(room.StatusOccupied, nil, now); err != nil {
			return errs.Mark(err, ErrRoomNotReady)
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if _, err := tx.StayRecords().CreateCheckIn(ctx, res.ID(), rm.ID(), staffID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		observability.ObserveTransition(from.String(), res.Status().String())
		return nil
	})
}

func (c *checkInOutCommandsImpl) CheckOut(ctx context.Context, reservationID, staffID uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	var billID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.CheckOut(now); err != nil {
			return errs.Mark(err, ErrIllegalTransition)
		}

		rm, err := tx.Rooms().FindByIDForUpdate(ctx, res.EffectiveRoomID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := rm.ChangeStatus(room.StatusCleaning, nil, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.StayRecords().CompleteCheckOut(ctx, res.ID(), staffID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		billID, err = openDepartureBill(ctx, tx, res.ID(), rm.Number(), res.Stay().Nights(), res.TotalAmount(), now)
		if err != nil {
			return err
		}

		cleanup, err := task.NewTask(rm.ID(), task.KindHousekeeping,
			fmt.Sprintf("Turnover cleaning for room %s", rm.Number()), nil, task.PriorityHigh, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if _, err := tx.Tasks().Create(ctx, cleanup); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		observability.ObserveTransition(from.String(), res.Status().String())
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return billID, nil
}
