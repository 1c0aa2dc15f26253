package commands

import (
	"context"

	"hotel-backoffice/internal/domain/staff"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/pkg/jwt"
	"hotel-backoffice/internal/pkg/password"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrStaffDeactivated   = errs.New("staff account is deactivated")
	ErrEmailTaken         = errs.New("email is already registered")
	ErrInvalidRole        = errs.New("invalid staff role")
)

type LoginOutput struct {
	Token   string
	StaffID uuid.UUID
	Name    string
	Role    string
}

type RegisterStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginOutput, error)
	RegisterStaff(ctx context.Context, input RegisterStaffInput) (uuid.UUID, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService, clock: clk}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginOutput, error) {
	now := c.clock.Now()

	var out *LoginOutput
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		member, err := tx.Staff().FindByEmail(ctx, email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInvalidCredentials
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		if err := password.ComparePassword(member.PasswordHash(), plainPassword); err != nil {
			return ErrInvalidCredentials
		}
		if err := member.RecordLogin(now); err != nil {
			return ErrStaffDeactivated
		}
		if err := tx.Staff().UpdateLastLogin(ctx, member.ID(), now); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}

		token, err := c.jwt.GenerateToken(member.ID(), member.Role())
		if err != nil {
			return errs.Wrap(err, "failed to generate token")
		}

		out = &LoginOutput{
			Token:   token,
			StaffID: member.ID(),
			Name:    member.Name(),
			Role:    member.Role().String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authCommandsImpl) RegisterStaff(ctx context.Context, input RegisterStaffInput) (uuid.UUID, error) {
	now := c.clock.Now()

	role := staff.Role(input.Role)
	if !role.IsValid() {
		return uuid.Nil, ErrInvalidRole
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	member, err := staff.NewStaff(input.Name, input.Email, hash, role, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var staffID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staffID, err = tx.Staff().Create(ctx, member)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return staffID, nil
}
