package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type NotificationJobView struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Channel     string     `json:"channel"`
	Recipient   string     `json:"recipient"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	LastError   *string    `json:"last_error,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type NotificationFilter struct {
	Status *string
	Kind   *string
}

type NotificationQueries interface {
	List(ctx context.Context, filter NotificationFilter, limit int) ([]*NotificationJobView, error)
}

type NotificationViewRepo interface {
	FindAll(ctx context.Context, filter NotificationFilter, limit int32) ([]*NotificationJobView, error)
}

type notificationQueriesImpl struct {
	repo NotificationViewRepo
}

func NewNotificationQueries(repo NotificationViewRepo) NotificationQueries {
	return &notificationQueriesImpl{repo: repo}
}

func (q *notificationQueriesImpl) List(ctx context.Context, filter NotificationFilter, limit int) ([]*NotificationJobView, error) {
	return q.repo.FindAll(ctx, filter, int32(ValidateLimit(limit)))
}
