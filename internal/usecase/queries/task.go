package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskView struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"room_id"`
	RoomNumber   string     `json:"room_number"`
	Kind         string     `json:"kind"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type TaskFilter struct {
	RoomID     *uuid.UUID
	Kind       *string
	Status     *string
	AssigneeID *uuid.UUID
}

type TaskQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TaskView, error)
	List(ctx context.Context, filter TaskFilter) ([]*TaskView, error)
}

type TaskViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TaskView, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]*TaskView, error)
}

type taskQueriesImpl struct {
	repo TaskViewRepo
}

func NewTaskQueries(repo TaskViewRepo) TaskQueries {
	return &taskQueriesImpl{repo: repo}
}

func (q *taskQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TaskView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *taskQueriesImpl) List(ctx context.Context, filter TaskFilter) ([]*TaskView, error) {
	return q.repo.FindAll(ctx, filter)
}
