package repository

import (
	"context"
	"time"

	"hotel-backoffice/internal/domain/inventory"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InventoryRepository struct {
	db store.Querier
}

func NewInventoryRepository(db store.Querier) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const createItemSQL = `
INSERT INTO inventory_items (id, name, sku, quantity, reorder_threshold, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createItemSQL,
		item.ID(), item.Name(), item.SKU(), item.Quantity(),
		item.ReorderThreshold(), item.CreatedAt(), item.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create inventory item", err)
	}
	return id, nil
}

const updateItemSQL = `
UPDATE inventory_items SET
    name = $2, sku = $3, quantity = $4, reorder_threshold = $5, updated_at = $6
WHERE id = $1`

func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	tag, err := r.db.Exec(ctx, updateItemSQL,
		item.ID(), item.Name(), item.SKU(), item.Quantity(),
		item.ReorderThreshold(), item.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update inventory item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("inventory item not found", nil, infra.KindNotFound)
	}
	return nil
}

const findItemForUpdateSQL = `
SELECT id, name, sku, quantity, reorder_threshold, created_at, updated_at
FROM inventory_items
WHERE id = $1
FOR UPDATE`

func (r *InventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var (
		itemID               uuid.UUID
		name, sku            string
		quantity, threshold  int
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findItemForUpdateSQL, id).Scan(
		&itemID, &name, &sku, &quantity, &threshold, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("inventory item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find inventory item for update", err)
	}

	return inventory.ReconstructItem(
		itemID, name, sku, quantity, threshold,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const recordAdjustmentSQL = `
INSERT INTO inventory_adjustments (id, item_id, delta, reason, staff_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// RecordAdjustment appends to the audit trail alongside the quantity update.
func (r *InventoryRepository) RecordAdjustment(ctx context.Context, itemID uuid.UUID, delta int, reason string, staffID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, recordAdjustmentSQL,
		uuid.New(), itemID, delta, reason, staffID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record inventory adjustment", err)
	}
	return nil
}
