package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	RoomType         string    `json:"roomType"`
	Floor            int       `json:"floor"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightlyRateCents"`
	Status           string    `json:"status"`
	StatusReason     *string   `json:"statusReason,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type RoomListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	RoomType         string    `json:"roomType"`
	Floor            int       `json:"floor"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightlyRateCents"`
	Status           string    `json:"status"`
}

func FromRoomView(view *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromRoomList(items []*queries.RoomListItem) []RoomListItemResponse {
	resp := make([]RoomListItemResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}
