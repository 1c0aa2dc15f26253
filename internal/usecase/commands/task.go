package commands

import (
	"context"
	"errors"

	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound    = errs.New("task not found")
	ErrTaskTransition  = errs.New("task status transition not allowed")
	ErrTaskUnassigned  = errs.New("task has no assignee")
	ErrStaffNotFound   = errs.New("staff member not found")
	ErrInvalidPriority = errs.New("invalid task priority")
)

type CreateTaskInput struct {
	RoomID      uuid.UUID
	Kind        string
	Title       string
	Description *string
	Priority    string
}

type TaskCommands interface {
	Create(ctx context.Context, input CreateTaskInput) (uuid.UUID, error)
	Assign(ctx context.Context, id, staffID uuid.UUID) error
	Start(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	ChangePriority(ctx context.Context, id uuid.UUID, priority string) error
}

type taskCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTaskCommands(uow shared.UnitOfWork, clk clock.Clock) TaskCommands {
	return &taskCommandsImpl{uow: uow, clock: clk}
}

func (c *taskCommandsImpl) Create(ctx context.Context, input CreateTaskInput) (uuid.UUID, error) {
	now := c.clock.Now()

	t, err := task.NewTask(input.RoomID, task.Kind(input.Kind), input.Title,
		input.Description, task.Priority(input.Priority), now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var taskID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().RoomByID(ctx, input.RoomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		taskID, err = tx.Tasks().Create(ctx, t)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return taskID, nil
}

func (c *taskCommandsImpl) Assign(ctx context.Context, id, staffID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := findTask(ctx, tx, id)
		if err != nil {
			return err
		}

		t.Assign(staffID, now)
		if err := tx.Tasks().Update(ctx, t); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrStaffNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *taskCommandsImpl) Start(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, func(t *task.Task) error { return t.Start(c.clock.Now()) })
}

func (c *taskCommandsImpl) Complete(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, func(t *task.Task) error { return t.Complete(c.clock.Now()) })
}

func (c *taskCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, func(t *task.Task) error { return t.Cancel(c.clock.Now()) })
}

func (c *taskCommandsImpl) ChangePriority(ctx context.Context, id uuid.UUID, priority string) error {
	now := c.clock.Now()

	p := task.Priority(priority)
	if !p.IsValid() {
		return ErrInvalidPriority
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := findTask(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := t.ChangePriority(p, now); err != nil {
			return errs.Mark(err, ErrTaskTransition)
		}
		if err := tx.Tasks().Update(ctx, t); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *taskCommandsImpl) transition(ctx context.Context, id uuid.UUID, apply func(*task.Task) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := findTask(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := apply(t); err != nil {
			if errors.Is(err, task.ErrNotAssigned) {
				return ErrTaskUnassigned
			}
			return errs.Mark(err, ErrTaskTransition)
		}
		if err := tx.Tasks().Update(ctx, t); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func findTask(ctx context.Context, tx shared.Tx, id uuid.UUID) (*task.Task, error) {
	t, err := tx.Tasks().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return t, nil
}
