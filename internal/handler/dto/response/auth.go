package response

import (
	"hotel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token   string    `json:"token"`
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
}

func FromLoginOutput(out *commands.LoginOutput) *LoginResponse {
	return &LoginResponse{
		Token:   out.Token,
		StaffID: out.StaffID,
		Name:    out.Name,
		Role:    out.Role,
	}
}
