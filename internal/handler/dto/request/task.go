package request

import "github.com/google/uuid"

type CreateTaskRequest struct {
	RoomID      uuid.UUID `json:"room_id" binding:"required"`
	Kind        string    `json:"kind" binding:"required,oneof=housekeeping maintenance"`
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description,omitempty"`
	Priority    string    `json:"priority" binding:"required,oneof=low normal high urgent"`
}

type AssignTaskRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
}

type ChangeTaskPriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=low normal high urgent"`
}
