package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationReadStore struct {
	db store.Querier
}

func NewNotificationReadStore(db store.Querier) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

const listNotificationJobsSQL = `
SELECT id, kind, channel, recipient, status, attempts, last_error,
       scheduled_at, sent_at, created_at
FROM notification_jobs
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::text IS NULL OR kind = $2)
ORDER BY created_at DESC
LIMIT $3`

func (r *NotificationReadStore) FindAll(ctx context.Context, filter queries.NotificationFilter, limit int32) ([]*queries.NotificationJobView, error) {
	rows, err := r.db.Query(ctx, listNotificationJobsSQL,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.StringPtrToPgtype(filter.Kind),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}
	defer rows.Close()

	var result []*queries.NotificationJobView
	for rows.Next() {
		var (
			v           queries.NotificationJobView
			lastError   pgtype.Text
			scheduledAt pgtype.Timestamptz
			sentAt      pgtype.Timestamptz
			createdAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Kind, &v.Channel, &v.Recipient, &v.Status,
			&v.Attempts, &lastError, &scheduledAt, &sentAt, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		v.LastError = pgconv.StringPtrFromPgtype(lastError)
		v.ScheduledAt = pgconv.TimeFromPgtype(scheduledAt)
		v.SentAt = pgconv.TimePtrFromPgtype(sentAt)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return result, nil
}
