package request

type CreateRoomRequest struct {
	Number           string `json:"number" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=single double twin suite deluxe accessible"`
	Floor            int    `json:"floor" binding:"required"`
	Capacity         int    `json:"capacity" binding:"required,min=1"`
	NightlyRateCents int64  `json:"nightly_rate_cents" binding:"required,min=0"`
}

type UpdateRoomRequest struct {
	Capacity         *int   `json:"capacity,omitempty" binding:"omitempty,min=1"`
	NightlyRateCents *int64 `json:"nightly_rate_cents,omitempty" binding:"omitempty,min=0"`
}

type ChangeRoomStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=available occupied cleaning maintenance out_of_service"`
	Reason *string `json:"reason,omitempty"`
}
