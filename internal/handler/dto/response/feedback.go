package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FeedbackResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	GuestName     string    `json:"guestName"`
	RoomNumber    string    `json:"roomNumber"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type RoomRatingResponse struct {
	RoomID        uuid.UUID `json:"roomId"`
	RoomNumber    string    `json:"roomNumber"`
	AverageRating float64   `json:"averageRating"`
	FeedbackCount int64     `json:"feedbackCount"`
}

func FromFeedbackList(items []*queries.FeedbackView) []FeedbackResponse {
	resp := make([]FeedbackResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}

func FromRoomRatings(items []*queries.RoomRatingView) []RoomRatingResponse {
	resp := make([]RoomRatingResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}
