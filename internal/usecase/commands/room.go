package commands

import (
	"context"

	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNumberTaken   = errs.New("room number already exists")
	ErrIllegalRoomStatus = errs.New("room status transition not allowed")
)

type CreateRoomInput struct {
	Number           string
	Type             string
	Floor            int
	Capacity         int
	NightlyRateCents int64
}

type UpdateRoomInput struct {
	Capacity         *int
	NightlyRateCents *int64
}

type RoomCommands interface {
	Create(ctx context.Context, input CreateRoomInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) error
	// ChangeStatus moves the room through the operational cycle. An occupied
	// room has to pass through cleaning before it can be sold again.
	ChangeStatus(ctx context.Context, id uuid.UUID, next string, reason *string) error
	Retire(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{uow: uow, clock: clk}
}

func (c *roomCommandsImpl) Create(ctx context.Context, input CreateRoomInput) (uuid.UUID, error) {
	now := c.clock.Now()

	rate, err := reservation.NewMoney(input.NightlyRateCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	rm, err := room.NewRoom(input.Number, room.RoomType(input.Type), input.Floor, input.Capacity, rate, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var roomID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomID, err = tx.Rooms().Create(ctx, rm)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrRoomNumberTaken
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return roomID, nil
}

func (c *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := findRoom(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.Capacity != nil {
			if err := rm.ChangeCapacity(*input.Capacity, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}
		if input.NightlyRateCents != nil {
			rate, err := reservation.NewMoney(*input.NightlyRateCents)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			rm.ChangeRate(rate, now)
		}

		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *roomCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, next string, reason *string) error {
	now := c.clock.Now()

	target := room.Status(next)
	if !target.IsValid() {
		return ErrIllegalRoomStatus
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := findRoom(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := rm.ChangeStatus(target, reason, now); err != nil {
			return errs.Mark(err, ErrIllegalRoomStatus)
		}
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *roomCommandsImpl) Retire(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := findRoom(ctx, tx, id)
		if err != nil {
			return err
		}

		rm.Retire(now)
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func findRoom(ctx context.Context, tx shared.Tx, id uuid.UUID) (*room.Room, error) {
	rm, err := tx.Rooms().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !rm.IsActive() {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}
