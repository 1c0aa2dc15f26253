package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	GuestID            uuid.UUID  `json:"guestId"`
	GuestName          string     `json:"guestName"`
	GuestEmail         string     `json:"guestEmail"`
	RoomID             uuid.UUID  `json:"roomId"`
	RoomNumber         string     `json:"roomNumber"`
	AssignedRoomID     *uuid.UUID `json:"assignedRoomId,omitempty"`
	AssignedRoomNumber *string    `json:"assignedRoomNumber,omitempty"`
	CheckIn            time.Time  `json:"checkIn"`
	CheckOut           time.Time  `json:"checkOut"`
	Nights             int        `json:"nights"`
	NumberOfGuests     int        `json:"numberOfGuests"`
	Status             string     `json:"status"`
	TotalAmountCents   int64      `json:"totalAmountCents"`
	DepositAmountCents *int64     `json:"depositAmountCents,omitempty"`
	Source             string     `json:"source"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	Items      []ReservationListItemResponse `json:"items"`
	NextCursor *string                       `json:"nextCursor,omitempty"`
}

type ReservationListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	GuestName        string    `json:"guestName"`
	RoomNumber       string    `json:"roomNumber"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	NumberOfGuests   int       `json:"numberOfGuests"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	CreatedAt        time.Time `json:"createdAt"`
}

type AvailabilityResponse struct {
	RoomID                uuid.UUID  `json:"roomId"`
	CheckIn               time.Time  `json:"checkIn"`
	CheckOut              time.Time  `json:"checkOut"`
	Available             bool       `json:"available"`
	BlockingReservationID *uuid.UUID `json:"blockingReservationId,omitempty"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{Items: make([]ReservationListItemResponse, len(items))}
	for i, item := range items {
		_ = copier.Copy(&resp.Items[i], item)
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

func FromAvailability(av *queries.RoomAvailability) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, av)
	return &resp
}
