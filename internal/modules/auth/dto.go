package auth

import "rentalhub/internal/domain"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Role     string         `json:"role"`
	Roles    []string       `json:"roles"`
	Profile  domain.Profile `json:"profile"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      UserResponse `json:"user"`
}
