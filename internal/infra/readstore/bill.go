package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BillReadStore struct {
	db store.Querier
}

func NewBillReadStore(db store.Querier) *BillReadStore {
	return &BillReadStore{db: db}
}

func (r *BillReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BillView, error) {
	return r.findOne(ctx,
		`SELECT id, reservation_id, status, issued_at, created_at, updated_at
		 FROM bills WHERE id = $1`, id)
}

func (r *BillReadStore) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*queries.BillView, error) {
	return r.findOne(ctx,
		`SELECT id, reservation_id, status, issued_at, created_at, updated_at
		 FROM bills WHERE reservation_id = $1`, reservationID)
}

func (r *BillReadStore) findOne(ctx context.Context, sql string, arg uuid.UUID) (*queries.BillView, error) {
	var (
		v                    queries.BillView
		issuedAt             pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&v.ID, &v.ReservationID, &v.Status, &issuedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bill not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bill", err)
	}
	v.IssuedAt = pgconv.TimePtrFromPgtype(issuedAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	if err := r.loadLineItems(ctx, &v); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, &v); err != nil {
		return nil, err
	}
	v.BalanceCents = v.TotalCents - v.PaidCents
	return &v, nil
}

const loadBillLinesSQL = `
SELECT id, description, quantity, unit_price_cents
FROM bill_line_items
WHERE bill_id = $1
ORDER BY created_at, id`

func (r *BillReadStore) loadLineItems(ctx context.Context, v *queries.BillView) error {
	rows, err := r.db.Query(ctx, loadBillLinesSQL, v.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load bill line items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.BillLineView
		if err := rows.Scan(&line.ID, &line.Description, &line.Quantity, &line.UnitPriceCents); err != nil {
			return infra.WrapRepoErr("failed to scan bill line item", err)
		}
		line.AmountCents = line.UnitPriceCents * int64(line.Quantity)
		v.TotalCents += line.AmountCents
		v.LineItems = append(v.LineItems, line)
	}
	return rows.Err()
}

const loadBillPaymentsSQL = `
SELECT id, amount_cents, method, reference, paid_at
FROM payments
WHERE bill_id = $1
ORDER BY paid_at, id`

func (r *BillReadStore) loadPayments(ctx context.Context, v *queries.BillView) error {
	rows, err := r.db.Query(ctx, loadBillPaymentsSQL, v.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load payments", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p         queries.PaymentView
			reference pgtype.Text
			paidAt    pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.AmountCents, &p.Method, &reference, &paidAt); err != nil {
			return infra.WrapRepoErr("failed to scan payment", err)
		}
		p.Reference = pgconv.StringPtrFromPgtype(reference)
		p.PaidAt = pgconv.TimeFromPgtype(paidAt)
		v.PaidCents += p.AmountCents
		v.Payments = append(v.Payments, p)
	}
	return rows.Err()
}
