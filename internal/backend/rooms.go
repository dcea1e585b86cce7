package backend

import (
	"context"
	"net/http"

	"github.com/patrickmn/go-cache"

	"rentalhub/internal/domain"
)

// LandlordByRoom resolves the landlord of a room. Results are cached per room id.
func (c *Client) LandlordByRoom(ctx context.Context, s domain.Session, roomID string) (*domain.LandlordRef, error) {
	if v, ok := c.landlords.Get(roomID); ok {
		ref := v.(domain.LandlordRef)
		return &ref, nil
	}

	var out domain.LandlordRef
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/rooms/landlord-room/"+seg(roomID), nil, nil, &out, "Failed to fetch landlord"); err != nil {
		return nil, err
	}
	if out.ID != "" {
		c.landlords.Set(roomID, out, cache.DefaultExpiration)
	}
	return &out, nil
}
