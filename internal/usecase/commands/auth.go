package commands

import (
	"context"

	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/pkg/jwt"
	"room-reservation-api/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        string
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plaintext string) (*LoginResult, error)
}

type authCommands struct {
	users      UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(users UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommands{users: users, jwtService: jwtService}
}

func (a *authCommands) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	user, hash, err := a.users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch; no user enumeration.
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(hash, plaintext); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{UserID: user.ID, Role: user.Role, AccessToken: token}, nil
}
