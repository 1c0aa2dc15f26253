package request

import (
	"time"

	"hotel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	GuestID            uuid.UUID `json:"guest_id" binding:"required"`
	RoomID             uuid.UUID `json:"room_id" binding:"required"`
	CheckIn            time.Time `json:"check_in" binding:"required"`
	CheckOut           time.Time `json:"check_out" binding:"required"`
	NumberOfGuests     int       `json:"number_of_guests" binding:"required,min=1"`
	TotalAmountCents   *int64    `json:"total_amount_cents,omitempty"`
	DepositAmountCents *int64    `json:"deposit_amount_cents,omitempty"`
	Source             string    `json:"source" binding:"required,oneof=online phone walk_in travel_agent"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		GuestID:            r.GuestID,
		RoomID:             r.RoomID,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		NumberOfGuests:     r.NumberOfGuests,
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: r.DepositAmountCents,
		Source:             r.Source,
	}
}

type UpdateReservationRequest struct {
	RoomID             *uuid.UUID `json:"room_id,omitempty"`
	CheckIn            *time.Time `json:"check_in,omitempty"`
	CheckOut           *time.Time `json:"check_out,omitempty"`
	NumberOfGuests     *int       `json:"number_of_guests,omitempty" binding:"omitempty,min=1"`
	TotalAmountCents   *int64     `json:"total_amount_cents,omitempty"`
	DepositAmountCents *int64     `json:"deposit_amount_cents,omitempty"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		RoomID:             r.RoomID,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		NumberOfGuests:     r.NumberOfGuests,
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: r.DepositAmountCents,
	}
}

type UpdateReservationStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

type AssignRoomRequest struct {
	RoomID uuid.UUID `json:"room_id" binding:"required"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DeleteReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AvailabilityQuery struct {
	CheckIn     time.Time `form:"check_in" time_format:"2006-01-02" binding:"required"`
	CheckOut    time.Time `form:"check_out" time_format:"2006-01-02" binding:"required"`
	RoomType    *string   `form:"room_type"`
	MinCapacity *int      `form:"min_capacity" binding:"omitempty,min=1"`
}
