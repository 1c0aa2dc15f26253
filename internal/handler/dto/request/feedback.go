package request

import "github.com/google/uuid"

type SubmitFeedbackRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Rating        int       `json:"rating" binding:"required,min=1,max=5"`
	Comment       string    `json:"comment" binding:"max=2000"`
}
