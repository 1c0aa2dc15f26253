package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type InventoryItemResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SKU              string    `json:"sku"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold int       `json:"reorderThreshold"`
	NeedsReorder     bool      `json:"needsReorder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type InventoryAdjustmentResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	StaffID   uuid.UUID `json:"staffId"`
	StaffName string    `json:"staffName"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromInventoryItem(view *queries.InventoryItemView) *InventoryItemResponse {
	var resp InventoryItemResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromInventoryList(items []*queries.InventoryItemView) []InventoryItemResponse {
	resp := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}

func FromAdjustmentList(items []*queries.InventoryAdjustmentView) []InventoryAdjustmentResponse {
	resp := make([]InventoryAdjustmentResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&resp[i], item)
	}
	return resp
}
