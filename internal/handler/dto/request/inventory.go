package request

type CreateItemRequest struct {
	Name             string `json:"name" binding:"required"`
	SKU              string `json:"sku" binding:"required"`
	Quantity         int    `json:"quantity" binding:"min=0"`
	ReorderThreshold int    `json:"reorder_threshold" binding:"min=0"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type ChangeThresholdRequest struct {
	ReorderThreshold int `json:"reorder_threshold" binding:"min=0"`
}
