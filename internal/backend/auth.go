package backend

import (
	"context"
	"net/http"

	"rentalhub/internal/domain"
)

func (c *Client) Login(ctx context.Context, username, password string) (*domain.Login, error) {
	body := map[string]string{"username": username, "password": password}
	var out domain.Login
	if err := c.doJSON(ctx, "", http.MethodPost, "/auth/login", nil, body, &out, "Invalid username or password"); err != nil {
		return nil, err
	}
	return &out, nil
}
