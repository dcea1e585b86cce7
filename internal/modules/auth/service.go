package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
)

type Service struct {
	backend Backend
	tokens  TokenIssuer
	ttl     time.Duration
}

func NewService(b Backend, tokens TokenIssuer, ttl time.Duration) *Service {
	return &Service{backend: b, tokens: tokens, ttl: ttl}
}

// Login authenticates against the backend and wraps its access token in a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	res, err := s.backend.Login(ctx, username, req.Password)
	if err != nil {
		if be, ok := backend.AsError(err); ok && (be.Status == http.StatusUnauthorized || be.Status == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, be.Message)
		}
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	role := domain.PrimaryRole(res.Roles)
	token, err := s.tokens.GenerateToken(res.ID, role, res.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	log.Printf("login user_id=%s role=%s", res.ID, role)

	roles := res.Roles
	if roles == nil {
		roles = []string{}
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
		User: UserResponse{
			ID:       res.ID,
			Username: res.Username,
			Role:     role,
			Roles:    roles,
			Profile:  res.UserProfile,
		},
	}, nil
}
