package billing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-backoffice/internal/domain/reservation"
)

var (
	ErrInvalidStatus     = errors.New("invalid bill status")
	ErrInvalidTransition = errors.New("bill status transition not allowed")
	ErrNotDraft          = errors.New("line items can only be changed on a draft bill")
	ErrNotPayable        = errors.New("bill is not accepting payments")
	ErrOverpayment       = errors.New("payment exceeds outstanding balance")
	ErrEmptyDescription  = errors.New("line item description must not be empty")
	ErrNonPositiveQty    = errors.New("line item quantity must be positive")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrLineItemNotFound  = errors.New("line item not found")
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusIssued        Status = "issued"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusVoid          Status = "void"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPartiallyPaid, StatusPaid, StatusVoid:
		return true
	default:
		return false
	}
}

var legalTransitions = map[Status][]Status{
	StatusDraft:         {StatusIssued, StatusVoid},
	StatusIssued:        {StatusPartiallyPaid, StatusPaid, StatusVoid},
	StatusPartiallyPaid: {StatusPaid, StatusVoid},
	StatusPaid:          {},
	StatusVoid:          {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodVoucher      PaymentMethod = "voucher"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodVoucher:
		return true
	default:
		return false
	}
}

type LineItem struct {
	ID          uuid.UUID
	Description string
	Quantity    int
	UnitPrice   reservation.Money
	CreatedAt   time.Time
}

func (li LineItem) Amount() reservation.Money {
	return reservation.MustMoney(li.UnitPrice.Cents() * int64(li.Quantity))
}

type Payment struct {
	ID        uuid.UUID
	Amount    reservation.Money
	Method    PaymentMethod
	Reference *string
	PaidAt    time.Time
}

// Bill aggregates line items and payments for one reservation. Totals are
// always computed from the items and payments, never stored denormalized.
type Bill struct {
	id            uuid.UUID
	reservationID uuid.UUID
	status        Status
	lineItems     []LineItem
	payments      []Payment
	issuedAt      *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBill(reservationID uuid.UUID, now time.Time) *Bill {
	return &Bill{
		id:            uuid.New(),
		reservationID: reservationID,
		status:        StatusDraft,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructBill(
	id, reservationID uuid.UUID,
	status Status,
	lineItems []LineItem,
	payments []Payment,
	issuedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Bill {
	return &Bill{
		id:            id,
		reservationID: reservationID,
		status:        status,
		lineItems:     lineItems,
		payments:      payments,
		issuedAt:      issuedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Bill) AddLineItem(description string, quantity int, unitPrice reservation.Money, now time.Time) (LineItem, error) {
	if b.status != StatusDraft {
		return LineItem{}, ErrNotDraft
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return LineItem{}, ErrEmptyDescription
	}
	if quantity <= 0 {
		return LineItem{}, ErrNonPositiveQty
	}

	item := LineItem{
		ID:          uuid.New(),
		Description: trimmed,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
	}
	b.lineItems = append(b.lineItems, item)
	b.updatedAt = now
	return item, nil
}

func (b *Bill) RemoveLineItem(itemID uuid.UUID, now time.Time) error {
	if b.status != StatusDraft {
		return ErrNotDraft
	}
	for i, item := range b.lineItems {
		if item.ID == itemID {
			b.lineItems = append(b.lineItems[:i], b.lineItems[i+1:]...)
			b.updatedAt = now
			return nil
		}
	}
	return ErrLineItemNotFound
}

func (b *Bill) Issue(now time.Time) error {
	if !b.status.CanTransitionTo(StatusIssued) {
		return ErrInvalidTransition
	}
	b.status = StatusIssued
	t := now
	b.issuedAt = &t
	b.updatedAt = now
	return nil
}

// RecordPayment appends a payment and advances the status based on the
// resulting balance. Overpayment is rejected rather than tracked as credit.
func (b *Bill) RecordPayment(amount reservation.Money, method PaymentMethod, reference *string, now time.Time) (Payment, error) {
	if b.status != StatusIssued && b.status != StatusPartiallyPaid {
		return Payment{}, ErrNotPayable
	}
	if !method.IsValid() {
		return Payment{}, ErrInvalidMethod
	}
	if b.Balance().LessThan(amount) {
		return Payment{}, ErrOverpayment
	}

	p := Payment{
		ID:        uuid.New(),
		Amount:    amount,
		Method:    method,
		Reference: reference,
		PaidAt:    now,
	}
	b.payments = append(b.payments, p)
	if b.Balance().Cents() == 0 {
		b.status = StatusPaid
	} else {
		b.status = StatusPartiallyPaid
	}
	b.updatedAt = now
	return p, nil
}

func (b *Bill) Void(now time.Time) error {
	if !b.status.CanTransitionTo(StatusVoid) {
		return ErrInvalidTransition
	}
	b.status = StatusVoid
	b.updatedAt = now
	return nil
}

func (b *Bill) Total() reservation.Money {
	var cents int64
	for _, item := range b.lineItems {
		cents += item.Amount().Cents()
	}
	return reservation.MustMoney(cents)
}

func (b *Bill) PaidAmount() reservation.Money {
	var cents int64
	for _, p := range b.payments {
		cents += p.Amount.Cents()
	}
	return reservation.MustMoney(cents)
}

func (b *Bill) Balance() reservation.Money {
	return b.Total().Sub(b.PaidAmount())
}

func (b *Bill) ID() uuid.UUID            { return b.id }
func (b *Bill) ReservationID() uuid.UUID { return b.reservationID }
func (b *Bill) Status() Status           { return b.status }
func (b *Bill) LineItems() []LineItem    { return b.lineItems }
func (b *Bill) Payments() []Payment      { return b.payments }
func (b *Bill) IssuedAt() *time.Time     { return b.issuedAt }
func (b *Bill) CreatedAt() time.Time     { return b.createdAt }
func (b *Bill) UpdatedAt() time.Time     { return b.updatedAt }
