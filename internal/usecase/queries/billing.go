package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BillView struct {
	ID            uuid.UUID      `json:"id"`
	ReservationID uuid.UUID      `json:"reservation_id"`
	Status        string         `json:"status"`
	LineItems     []BillLineView `json:"line_items"`
	Payments      []PaymentView  `json:"payments"`
	TotalCents    int64          `json:"total_cents"`
	PaidCents     int64          `json:"paid_cents"`
	BalanceCents  int64          `json:"balance_cents"`
	IssuedAt      *time.Time     `json:"issued_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type BillLineView struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	AmountCents    int64     `json:"amount_cents"`
}

type PaymentView struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Reference   *string   `json:"reference,omitempty"`
	PaidAt      time.Time `json:"paid_at"`
}

type BillQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BillView, error)
	GetByReservationID(ctx context.Context, reservationID uuid.UUID) (*BillView, error)
}

type BillViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BillView, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*BillView, error)
}

type billQueriesImpl struct {
	repo BillViewRepo
}

func NewBillQueries(repo BillViewRepo) BillQueries {
	return &billQueriesImpl{repo: repo}
}

func (q *billQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BillView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *billQueriesImpl) GetByReservationID(ctx context.Context, reservationID uuid.UUID) (*BillView, error) {
	return q.repo.FindByReservationID(ctx, reservationID)
}
