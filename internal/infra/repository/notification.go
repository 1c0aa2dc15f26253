package repository

import (
	"context"
	"time"

	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationRepository struct {
	db store.Querier
}

func NewNotificationRepository(db store.Querier) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const enqueueJobSQL = `
INSERT INTO notification_jobs (
    id, kind, channel, recipient, payload, status, attempts, last_error,
    scheduled_at, sent_at, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *NotificationRepository) Enqueue(ctx context.Context, job *notification.Job) error {
	_, err := r.db.Exec(ctx, enqueueJobSQL,
		job.ID(), job.Kind().String(), job.Channel().String(),
		job.Recipient(), job.Payload(), job.Status().String(),
		job.Attempts(), pgconv.StringPtrToPgtype(job.LastError()),
		job.ScheduledAt(), pgconv.TimePtrToPgtype(job.SentAt()),
		job.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

// SKIP LOCKED lets multiple dispatcher instances drain the outbox without
// contending on the same rows.
const claimDueJobsSQL = `
SELECT id, kind, channel, recipient, payload, status, attempts, last_error,
       scheduled_at, sent_at, created_at
FROM notification_jobs
WHERE status = 'queued' AND scheduled_at <= $1
ORDER BY scheduled_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*notification.Job, error) {
	rows, err := r.db.Query(ctx, claimDueJobsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due notification jobs", err)
	}
	defer rows.Close()

	var jobs []*notification.Job
	for rows.Next() {
		var (
			id            uuid.UUID
			kind, channel string
			recipient     string
			payload       []byte
			status        string
			attempts      int
			lastError     pgtype.Text
			scheduledAt   pgtype.Timestamptz
			sentAt        pgtype.Timestamptz
			createdAt     pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &kind, &channel, &recipient, &payload, &status,
			&attempts, &lastError, &scheduledAt, &sentAt, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, notification.ReconstructJob(
			id, notification.Kind(kind), notification.Channel(channel),
			recipient, payload, notification.Status(status), attempts,
			pgconv.StringPtrFromPgtype(lastError),
			pgconv.TimeFromPgtype(scheduledAt),
			pgconv.TimePtrFromPgtype(sentAt),
			pgconv.TimeFromPgtype(createdAt),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

const saveJobSQL = `
UPDATE notification_jobs SET
    status = $2, attempts = $3, last_error = $4, scheduled_at = $5, sent_at = $6
WHERE id = $1`

func (r *NotificationRepository) Save(ctx context.Context, job *notification.Job) error {
	tag, err := r.db.Exec(ctx, saveJobSQL,
		job.ID(), job.Status().String(), job.Attempts(),
		pgconv.StringPtrToPgtype(job.LastError()),
		job.ScheduledAt(), pgconv.TimePtrToPgtype(job.SentAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save notification job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	return nil
}
