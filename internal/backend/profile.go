package backend

import (
	"context"
	"net/http"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

func (c *Client) Profile(ctx context.Context, s domain.Session, userID string) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/profile/"+seg(userID), nil, nil, &out, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile sends the "profile" JSON part plus an optional "avatar" image.
func (c *Client) UpdateProfile(ctx context.Context, s domain.Session, in domain.ProfileUpdate, avatar *upload.Image) (*domain.Profile, error) {
	in.ID = s.UserID
	data, err := JSONPart("profile", in)
	if err != nil {
		return nil, err
	}
	parts := []Part{data}
	if p, ok := ImagePart("avatar", avatar); ok {
		parts = append(parts, p)
	}
	var out domain.Profile
	if err := c.doMultipart(ctx, s.AccessToken, http.MethodPatch, "/profile/update", parts, &out, "Failed to update profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// HasBankInfo reports whether a landlord has filled in bank details for deposits.
func (c *Client) HasBankInfo(ctx context.Context, s domain.Session, userID string) (bool, error) {
	var out bool
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/profile/ishavebank/"+seg(userID), nil, nil, &out, "Failed to check bank info"); err != nil {
		return false, err
	}
	return out, nil
}
