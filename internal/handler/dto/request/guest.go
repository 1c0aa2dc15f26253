package request

type CreateGuestRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   string  `json:"last_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone,omitempty"`
	DocumentID *string `json:"document_id,omitempty"`
}

type UpdateGuestRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	DocumentID *string `json:"document_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}
