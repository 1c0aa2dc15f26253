package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	ReservationID uuid.UUID          `json:"reservationId"`
	Status        string             `json:"status"`
	LineItems     []BillLineResponse `json:"lineItems"`
	Payments      []PaymentResponse  `json:"payments"`
	TotalCents    int64              `json:"totalCents"`
	PaidCents     int64              `json:"paidCents"`
	BalanceCents  int64              `json:"balanceCents"`
	IssuedAt      *time.Time         `json:"issuedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type BillLineResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	AmountCents    int64     `json:"amountCents"`
}

type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"`
	Reference   *string   `json:"reference,omitempty"`
	PaidAt      time.Time `json:"paidAt"`
}

func FromBillView(view *queries.BillView) *BillResponse {
	var resp BillResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
