package repository

import (
	"context"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BillRepository struct {
	db store.Querier
}

func NewBillRepository(db store.Querier) *BillRepository {
	return &BillRepository{db: db}
}

const createBillSQL = `
INSERT INTO bills (id, reservation_id, status, issued_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *BillRepository) Create(ctx context.Context, b *billing.Bill) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createBillSQL,
		b.ID(), b.ReservationID(), b.Status().String(),
		pgconv.TimePtrToPgtype(b.IssuedAt()),
		b.CreatedAt(), b.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create bill", err)
	}
	if err := r.upsertChildren(ctx, b); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

const updateBillSQL = `
UPDATE bills SET status = $2, issued_at = $3, updated_at = $4 WHERE id = $1`

// Save writes the bill header and upserts line items and payments. Child
// rows are keyed by their own UUIDs so re-inserting existing ones is a
// conflict-free no-op.
func (r *BillRepository) Save(ctx context.Context, b *billing.Bill) error {
	tag, err := r.db.Exec(ctx, updateBillSQL,
		b.ID(), b.Status().String(),
		pgconv.TimePtrToPgtype(b.IssuedAt()), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update bill", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bill not found", nil, infra.KindNotFound)
	}
	return r.upsertChildren(ctx, b)
}

const deleteBillItemsSQL = `
DELETE FROM bill_line_items WHERE bill_id = $1 AND id <> ALL($2::uuid[])`

const upsertLineItemSQL = `
INSERT INTO bill_line_items (id, bill_id, description, quantity, unit_price_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

const upsertPaymentSQL = `
INSERT INTO payments (id, bill_id, amount_cents, method, reference, paid_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

func (r *BillRepository) upsertChildren(ctx context.Context, b *billing.Bill) error {
	itemIDs := make([]uuid.UUID, 0, len(b.LineItems()))
	for _, item := range b.LineItems() {
		itemIDs = append(itemIDs, item.ID)
		_, err := r.db.Exec(ctx, upsertLineItemSQL,
			item.ID, b.ID(), item.Description, item.Quantity,
			item.UnitPrice.Cents(), item.CreatedAt,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert bill line item", err)
		}
	}
	// Removed draft items are pruned to mirror the aggregate.
	if _, err := r.db.Exec(ctx, deleteBillItemsSQL, b.ID(), itemIDs); err != nil {
		return infra.WrapRepoErr("failed to prune bill line items", err)
	}

	for _, p := range b.Payments() {
		_, err := r.db.Exec(ctx, upsertPaymentSQL,
			p.ID, b.ID(), p.Amount.Cents(), p.Method.String(),
			pgconv.StringPtrToPgtype(p.Reference), p.PaidAt,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert payment", err)
		}
	}
	return nil
}

func (r *BillRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	return r.findOne(ctx,
		`SELECT id, reservation_id, status, issued_at, created_at, updated_at
		 FROM bills WHERE id = $1 FOR UPDATE`, id)
}

func (r *BillRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*billing.Bill, error) {
	return r.findOne(ctx,
		`SELECT id, reservation_id, status, issued_at, created_at, updated_at
		 FROM bills WHERE reservation_id = $1`, reservationID)
}

func (r *BillRepository) findOne(ctx context.Context, sql string, arg uuid.UUID) (*billing.Bill, error) {
	var (
		id, reservationID    uuid.UUID
		status               string
		issuedAt             pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&id, &reservationID, &status, &issuedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bill not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bill", err)
	}

	items, err := r.loadLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := r.loadPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	return billing.ReconstructBill(
		id, reservationID, billing.Status(status), items, payments,
		pgconv.TimePtrFromPgtype(issuedAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const loadLineItemsSQL = `
SELECT id, description, quantity, unit_price_cents, created_at
FROM bill_line_items
WHERE bill_id = $1
ORDER BY created_at, id`

func (r *BillRepository) loadLineItems(ctx context.Context, billID uuid.UUID) ([]billing.LineItem, error) {
	rows, err := r.db.Query(ctx, loadLineItemsSQL, billID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load bill line items", err)
	}
	defer rows.Close()

	var items []billing.LineItem
	for rows.Next() {
		var (
			item      billing.LineItem
			cents     int64
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &cents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan bill line item", err)
		}
		item.UnitPrice = reservation.MustMoney(cents)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bill line items", err)
	}
	return items, nil
}

const loadPaymentsSQL = `
SELECT id, amount_cents, method, reference, paid_at
FROM payments
WHERE bill_id = $1
ORDER BY paid_at, id`

func (r *BillRepository) loadPayments(ctx context.Context, billID uuid.UUID) ([]billing.Payment, error) {
	rows, err := r.db.Query(ctx, loadPaymentsSQL, billID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load payments", err)
	}
	defer rows.Close()

	var payments []billing.Payment
	for rows.Next() {
		var (
			p         billing.Payment
			cents     int64
			method    string
			reference pgtype.Text
			paidAt    pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &cents, &method, &reference, &paidAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment", err)
		}
		p.Amount = reservation.MustMoney(cents)
		p.Method = billing.PaymentMethod(method)
		p.Reference = pgconv.StringPtrFromPgtype(reference)
		p.PaidAt = pgconv.TimeFromPgtype(paidAt)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payments", err)
	}
	return payments, nil
}
