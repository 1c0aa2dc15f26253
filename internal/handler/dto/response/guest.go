package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	DocumentID *string   `json:"documentId,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type GuestListResponse struct {
	Items      []GuestListItemResponse `json:"items"`
	NextCursor *string                 `json:"nextCursor,omitempty"`
}

type GuestListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromGuestView(view *queries.GuestView) *GuestResponse {
	var resp GuestResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromGuestList(items []*queries.GuestListItem, next *queries.Cursor) *GuestListResponse {
	resp := &GuestListResponse{Items: make([]GuestListItemResponse, len(items))}
	for i, item := range items {
		_ = copier.Copy(&resp.Items[i], item)
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
