package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind       = errors.New("invalid task kind")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidTransition = errors.New("task status transition not allowed")
	ErrEmptyTitle        = errors.New("task title must not be empty")
	ErrNotAssigned       = errors.New("task must be assigned before starting")
)

type Kind string

const (
	KindHousekeeping Kind = "housekeeping"
	KindMaintenance  Kind = "maintenance"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	return k == KindHousekeeping || k == KindMaintenance
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

var legalTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Task is a housekeeping or maintenance work order against a room.
type Task struct {
	id          uuid.UUID
	roomID      uuid.UUID
	kind        Kind
	title       string
	description *string
	priority    Priority
	status      Status
	assigneeID  *uuid.UUID
	startedAt   *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTask(roomID uuid.UUID, kind Kind, title string, description *string, priority Priority, now time.Time) (*Task, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	return &Task{
		id:          uuid.New(),
		roomID:      roomID,
		kind:        kind,
		title:       trimmed,
		description: description,
		priority:    priority,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTask(
	id, roomID uuid.UUID,
	kind Kind,
	title string,
	description *string,
	priority Priority,
	status Status,
	assigneeID *uuid.UUID,
	startedAt, completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		id:          id,
		roomID:      roomID,
		kind:        kind,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		assigneeID:  assigneeID,
		startedAt:   startedAt,
		completedAt: completedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Task) Assign(staffID uuid.UUID, now time.Time) {
	id := staffID
	t.assigneeID = &id
	t.updatedAt = now
}

func (t *Task) Start(now time.Time) error {
	if t.assigneeID == nil {
		return ErrNotAssigned
	}
	if !t.status.CanTransitionTo(StatusInProgress) {
		return ErrInvalidTransition
	}
	t.status = StatusInProgress
	ts := now
	t.startedAt = &ts
	t.updatedAt = now
	return nil
}

func (t *Task) Complete(now time.Time) error {
	if !t.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidTransition
	}
	t.status = StatusCompleted
	ts := now
	t.completedAt = &ts
	t.updatedAt = now
	return nil
}

func (t *Task) Cancel(now time.Time) error {
	if !t.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidTransition
	}
	t.status = StatusCancelled
	t.updatedAt = now
	return nil
}

func (t *Task) ChangePriority(priority Priority, now time.Time) error {
	if !priority.IsValid() {
		return ErrInvalidPriority
	}
	t.priority = priority
	t.updatedAt = now
	return nil
}

func (t *Task) ID() uuid.UUID           { return t.id }
func (t *Task) RoomID() uuid.UUID       { return t.roomID }
func (t *Task) Kind() Kind              { return t.kind }
func (t *Task) Title() string           { return t.title }
func (t *Task) Description() *string    { return t.description }
func (t *Task) Priority() Priority      { return t.priority }
func (t *Task) Status() Status          { return t.status }
func (t *Task) AssigneeID() *uuid.UUID  { return t.assigneeID }
func (t *Task) StartedAt() *time.Time   { return t.startedAt }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }
