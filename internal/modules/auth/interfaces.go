package auth

import (
	"context"

	"rentalhub/internal/domain"
)

type Backend interface {
	Login(ctx context.Context, username, password string) (*domain.Login, error)
}

// TokenIssuer mints the rentalhub session token.
type TokenIssuer interface {
	GenerateToken(userID, role, accessToken string) (string, error)
}
