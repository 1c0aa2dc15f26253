package request

import "github.com/google/uuid"

type CreateBillRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
}

type AddLineItemRequest struct {
	Description    string `json:"description" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	UnitPriceCents int64  `json:"unit_price_cents" binding:"required,min=0"`
}

type RecordPaymentRequest struct {
	AmountCents int64   `json:"amount_cents" binding:"required,min=1"`
	Method      string  `json:"method" binding:"required,oneof=cash card bank_transfer voucher"`
	Reference   *string `json:"reference,omitempty"`
}
