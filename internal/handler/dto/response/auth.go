package response

import (
	"room-reservation-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID:      result.UserID,
		Role:        result.Role,
		AccessToken: result.AccessToken,
	}
}
