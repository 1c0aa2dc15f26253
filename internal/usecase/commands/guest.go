package commands

import (
	"context"

	"hotel-backoffice/internal/domain/guest"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/pkg/patch"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrGuestEmailTaken = errs.New("guest email already registered")

type CreateGuestInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	DocumentID *string
}

type UpdateGuestInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	DocumentID *string
	Notes      *string
}

type GuestCommands interface {
	Create(ctx context.Context, input CreateGuestInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGuestInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type guestCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewGuestCommands(uow shared.UnitOfWork, clk clock.Clock) GuestCommands {
	return &guestCommandsImpl{uow: uow, clock: clk}
}

func (c *guestCommandsImpl) Create(ctx context.Context, input CreateGuestInput) (uuid.UUID, error) {
	now := c.clock.Now()

	email, err := guest.NewEmail(input.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	g, err := guest.NewGuest(input.FirstName, input.LastName, email, input.Phone, input.DocumentID, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var guestID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		guestID, err = tx.Guests().Create(ctx, g)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrGuestEmailTaken
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return guestID, nil
}

func (c *guestCommandsImpl) Update(ctx context.Context, id uuid.UUID, input UpdateGuestInput) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		g, err := findGuest(ctx, tx, id)
		if err != nil {
			return err
		}

		email := g.Email()
		if input.Email != nil {
			email, err = guest.NewEmail(*input.Email)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		err = g.UpdateProfile(
			patch.Coalesce(input.FirstName, g.FirstName()),
			patch.Coalesce(input.LastName, g.LastName()),
			email,
			patch.CoalescePtr(input.Phone, g.Phone()),
			patch.CoalescePtr(input.DocumentID, g.DocumentID()),
			patch.CoalescePtr(input.Notes, g.Notes()),
			now,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Guests().Update(ctx, g); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrGuestEmailTaken
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *guestCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		g, err := findGuest(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := g.SoftDelete(now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Guests().Update(ctx, g); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func findGuest(ctx context.Context, tx shared.Tx, id uuid.UUID) (*guest.Guest, error) {
	g, err := tx.Guests().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !g.IsActive() {
		return nil, ErrGuestNotFound
	}
	return g, nil
}
