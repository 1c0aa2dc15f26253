package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type NotificationJobResponse struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Channel     string     `json:"channel"`
	Recipient   string     `json:"recipient"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	LastError   *string    `json:"lastError,omitempty"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromNotificationList(items []*queries.NotificationJobView) []NotificationJobResponse {
	resp := make([]NotificationJobResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}
