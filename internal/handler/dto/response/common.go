package response

import "github.com/google/uuid"

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
