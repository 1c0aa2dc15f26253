package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InventoryItemView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SKU              string    `json:"sku"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold int       `json:"reorder_threshold"`
	NeedsReorder     bool      `json:"needs_reorder"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type InventoryAdjustmentView struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	StaffID   uuid.UUID `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	CreatedAt time.Time `json:"created_at"`
}

type InventoryQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemView, error)
	List(ctx context.Context) ([]*InventoryItemView, error)
	ListAdjustments(ctx context.Context, itemID uuid.UUID, limit int) ([]*InventoryAdjustmentView, error)
}

type InventoryViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItemView, error)
	FindAll(ctx context.Context) ([]*InventoryItemView, error)
	FindAdjustments(ctx context.Context, itemID uuid.UUID, limit int32) ([]*InventoryAdjustmentView, error)
}

type inventoryQueriesImpl struct {
	repo InventoryViewRepo
}

func NewInventoryQueries(repo InventoryViewRepo) InventoryQueries {
	return &inventoryQueriesImpl{repo: repo}
}

func (q *inventoryQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *inventoryQueriesImpl) List(ctx context.Context) ([]*InventoryItemView, error) {
	return q.repo.FindAll(ctx)
}

func (q *inventoryQueriesImpl) ListAdjustments(ctx context.Context, itemID uuid.UUID, limit int) ([]*InventoryAdjustmentView, error) {
	return q.repo.FindAdjustments(ctx, itemID, int32(ValidateLimit(limit)))
}
