package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"roomId"`
	RoomNumber   string     `json:"roomNumber"`
	Kind         string     `json:"kind"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	AssigneeID   *uuid.UUID `json:"assigneeId,omitempty"`
	AssigneeName *string    `json:"assigneeName,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func FromTaskView(view *queries.TaskView) *TaskResponse {
	var resp TaskResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromTaskList(items []*queries.TaskView) []TaskResponse {
	resp := make([]TaskResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}
