package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type TaskReadStore struct {
	db store.Querier
}

func NewTaskReadStore(db store.Querier) *TaskReadStore {
	return &TaskReadStore{db: db}
}

const taskViewColumnsSQL = `
SELECT t.id, t.room_id, rm.number AS room_number, t.kind, t.title, t.description,
       t.priority, t.status, t.assignee_id, s.name AS assignee_name,
       t.started_at, t.completed_at, t.created_at, t.updated_at
FROM tasks t
JOIN rooms rm ON rm.id = t.room_id
LEFT JOIN staff s ON s.id = t.assignee_id`

const findTaskViewSQL = taskViewColumnsSQL + `
WHERE t.id = $1`

func (r *TaskReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TaskView, error) {
	rows, err := r.db.Query(ctx, findTaskViewSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find task by ID", err)
	}
	tasks, err := scanTaskViews(rows)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, infra.WrapRepoErr("task not found", nil, infra.KindNotFound)
	}
	return tasks[0], nil
}

const listTasksSQL = taskViewColumnsSQL + `
WHERE ($1::uuid IS NULL OR t.room_id = $1)
  AND ($2::text IS NULL OR t.kind = $2)
  AND ($3::text IS NULL OR t.status = $3)
  AND ($4::uuid IS NULL OR t.assignee_id = $4)
ORDER BY
  CASE t.priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 ELSE 3 END,
  t.created_at`

func (r *TaskReadStore) FindAll(ctx context.Context, filter queries.TaskFilter) ([]*queries.TaskView, error) {
	rows, err := r.db.Query(ctx, listTasksSQL,
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		pgconv.StringPtrToPgtype(filter.Kind),
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.UUIDPtrToPgtype(filter.AssigneeID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tasks", err)
	}
	return scanTaskViews(rows)
}

func scanTaskViews(rows pgx.Rows) ([]*queries.TaskView, error) {
	defer rows.Close()

	var result []*queries.TaskView
	for rows.Next() {
		var (
			v                      queries.TaskView
			description            pgtype.Text
			assigneeID             pgtype.UUID
			assigneeName           pgtype.Text
			startedAt, completedAt pgtype.Timestamptz
			createdAt, updatedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.RoomID, &v.RoomNumber, &v.Kind, &v.Title,
			&description, &v.Priority, &v.Status, &assigneeID, &assigneeName,
			&startedAt, &completedAt, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan task view", err)
		}
		v.Description = pgconv.StringPtrFromPgtype(description)
		v.AssigneeID = pgconv.UUIDPtrFromPgtype(assigneeID)
		v.AssigneeName = pgconv.StringPtrFromPgtype(assigneeName)
		v.StartedAt = pgconv.TimePtrFromPgtype(startedAt)
		v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate tasks", err)
	}
	return result, nil
}
