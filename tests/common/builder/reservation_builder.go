//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	GuestID            uuid.UUID
	GuestName          string
	GuestEmail         string
	RoomID             uuid.UUID
	RoomNumber         string
	CheckIn            time.Time
	CheckOut           time.Time
	NumberOfGuests     int
	Status             string
	TotalAmountCents   int64
	DepositAmountCents *int64
	Source             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC()
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		GuestID:          uuid.New(),
		GuestName:        "Ada Lovelace",
		GuestEmail:       "guest@example.com",
		RoomID:           uuid.New(),
		RoomNumber:       "204",
		CheckIn:          checkIn,
		CheckOut:         checkIn.AddDate(0, 0, 3),
		NumberOfGuests:   2,
		Status:           "pending",
		TotalAmountCents: 45000,
		Source:           "online",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		GuestID:            b.GuestID,
		RoomID:             b.RoomID,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		NumberOfGuests:     b.NumberOfGuests,
		TotalAmountCents:   &b.TotalAmountCents,
		DepositAmountCents: b.DepositAmountCents,
		Source:             b.Source,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	id := uuid.New()
	return &queries.ReservationView{
		ID:                 id,
		GuestID:            b.GuestID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		RoomID:             b.RoomID,
		RoomNumber:         b.RoomNumber,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		Nights:             int(b.CheckOut.Sub(b.CheckIn).Hours() / 24),
		NumberOfGuests:     b.NumberOfGuests,
		Status:             b.Status,
		TotalAmountCents:   b.TotalAmountCents,
		DepositAmountCents: b.DepositAmountCents,
		Source:             b.Source,
		IsActive:           true,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:               uuid.New(),
		GuestName:        b.GuestName,
		RoomNumber:       b.RoomNumber,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		NumberOfGuests:   b.NumberOfGuests,
		Status:           b.Status,
		TotalAmountCents: b.TotalAmountCents,
		CreatedAt:        b.CreatedAt,
	}
}
