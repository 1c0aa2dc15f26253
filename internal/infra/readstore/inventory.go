package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type InventoryReadStore struct {
	db store.Querier
}

func NewInventoryReadStore(db store.Querier) *InventoryReadStore {
	return &InventoryReadStore{db: db}
}

const inventoryItemColumnsSQL = `
SELECT id, name, sku, quantity, reorder_threshold,
       quantity <= reorder_threshold AS needs_reorder,
       created_at, updated_at
FROM inventory_items`

const findInventoryItemSQL = inventoryItemColumnsSQL + `
WHERE id = $1`

func (r *InventoryReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InventoryItemView, error) {
	rows, err := r.db.Query(ctx, findInventoryItemSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find inventory item", err)
	}
	items, err := scanInventoryItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, infra.WrapRepoErr("inventory item not found", nil, infra.KindNotFound)
	}
	return items[0], nil
}

const listInventoryItemsSQL = inventoryItemColumnsSQL + `
ORDER BY name`

func (r *InventoryReadStore) FindAll(ctx context.Context) ([]*queries.InventoryItemView, error) {
	rows, err := r.db.Query(ctx, listInventoryItemsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list inventory items", err)
	}
	return scanInventoryItems(rows)
}

const findAdjustmentsSQL = `
SELECT a.id, a.item_id, a.delta, a.reason, a.staff_id, s.name AS staff_name, a.created_at
FROM inventory_adjustments a
JOIN staff s ON s.id = a.staff_id
WHERE a.item_id = $1
ORDER BY a.created_at DESC
LIMIT $2`

func (r *InventoryReadStore) FindAdjustments(ctx context.Context, itemID uuid.UUID, limit int32) ([]*queries.InventoryAdjustmentView, error) {
	rows, err := r.db.Query(ctx, findAdjustmentsSQL, itemID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list inventory adjustments", err)
	}
	defer rows.Close()

	var result []*queries.InventoryAdjustmentView
	for rows.Next() {
		var (
			v         queries.InventoryAdjustmentView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.ItemID, &v.Delta, &v.Reason, &v.StaffID, &v.StaffName, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan inventory adjustment", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate inventory adjustments", err)
	}
	return result, nil
}

func scanInventoryItems(rows pgx.Rows) ([]*queries.InventoryItemView, error) {
	defer rows.Close()

	var result []*queries.InventoryItemView
	for rows.Next() {
		var (
			v                    queries.InventoryItemView
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.SKU, &v.Quantity, &v.ReorderThreshold,
			&v.NeedsReorder, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan inventory item", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate inventory items", err)
	}
	return result, nil
}
