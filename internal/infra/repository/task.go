package repository

import (
	"context"

	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TaskRepository struct {
	db store.Querier
}

func NewTaskRepository(db store.Querier) *TaskRepository {
	return &TaskRepository{db: db}
}

const createTaskSQL = `
INSERT INTO tasks (
    id, room_id, kind, title, description, priority, status, assignee_id,
    started_at, completed_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createTaskSQL,
		t.ID(), t.RoomID(), t.Kind().String(), t.Title(),
		pgconv.StringPtrToPgtype(t.Description()),
		t.Priority().String(), t.Status().String(),
		pgconv.UUIDPtrToPgtype(t.AssigneeID()),
		pgconv.TimePtrToPgtype(t.StartedAt()),
		pgconv.TimePtrToPgtype(t.CompletedAt()),
		t.CreatedAt(), t.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create task", err)
	}
	return id, nil
}

const updateTaskSQL = `
UPDATE tasks SET
    title = $2, description = $3, priority = $4, status = $5,
    assignee_id = $6, started_at = $7, completed_at = $8, updated_at = $9
WHERE id = $1`

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	tag, err := r.db.Exec(ctx, updateTaskSQL,
		t.ID(), t.Title(),
		pgconv.StringPtrToPgtype(t.Description()),
		t.Priority().String(), t.Status().String(),
		pgconv.UUIDPtrToPgtype(t.AssigneeID()),
		pgconv.TimePtrToPgtype(t.StartedAt()),
		pgconv.TimePtrToPgtype(t.CompletedAt()),
		t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update task", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("task not found", nil, infra.KindNotFound)
	}
	return nil
}

const findTaskForUpdateSQL = `
SELECT id, room_id, kind, title, description, priority, status, assignee_id,
       started_at, completed_at, created_at, updated_at
FROM tasks
WHERE id = $1
FOR UPDATE`

func (r *TaskRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	var (
		taskID, roomID         uuid.UUID
		kind, title            string
		description            pgtype.Text
		priority, status       string
		assigneeID             pgtype.UUID
		startedAt, completedAt pgtype.Timestamptz
		createdAt, updatedAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findTaskForUpdateSQL, id).Scan(
		&taskID, &roomID, &kind, &title, &description, &priority, &status,
		&assigneeID, &startedAt, &completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("task not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find task for update", err)
	}

	return task.ReconstructTask(
		taskID, roomID, task.Kind(kind), title,
		pgconv.StringPtrFromPgtype(description),
		task.Priority(priority), task.Status(status),
		pgconv.UUIDPtrFromPgtype(assigneeID),
		pgconv.TimePtrFromPgtype(startedAt),
		pgconv.TimePtrFromPgtype(completedAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
