package backend

import (
	"context"
	"net/http"
	"net/url"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

func (c *Client) CreateBooking(ctx context.Context, s domain.Session, in domain.CreateBookingInput) (*domain.Booking, error) {
	var out domain.Booking
	err := c.doJSON(ctx, s.AccessToken, http.MethodPost, "/bookings/user/"+seg(s.UserID), nil, in, &out, "Failed to create booking")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserBookings(ctx context.Context, s domain.Session, page, size int) (*domain.BookingPage, error) {
	var out domain.BookingPage
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/bookings/user/"+seg(s.UserID)+"/paging", pageQuery(page, size), nil, &out, "Failed to fetch rental history")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LandlordBookings(ctx context.Context, s domain.Session, page, size int) (*domain.BookingPage, error) {
	var out domain.BookingPage
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/bookings/landlord/"+seg(s.UserID)+"/paging", pageQuery(page, size), nil, &out, "Failed to fetch bookings")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type statusUpdate struct {
	NewStatus domain.BookingStatus `json:"newStatus"`
	ActorID   string               `json:"actorId"`
	ActorRole string               `json:"actorRole"`
}

// UpdateBookingStatus asks the backend to move a booking. The backend enforces who may do what.
func (c *Client) UpdateBookingStatus(ctx context.Context, s domain.Session, bookingID string, newStatus domain.BookingStatus) error {
	body := statusUpdate{NewStatus: newStatus, ActorID: s.UserID, ActorRole: s.ActorRole()}
	return c.doJSON(ctx, s.AccessToken, http.MethodPatch, "/bookings/"+seg(bookingID)+"/status", nil, body, nil, "Failed to update booking status")
}

func (c *Client) LandlordPaymentInfo(ctx context.Context, s domain.Session, bookingID string) (*domain.LandlordPaymentInfo, error) {
	var out domain.LandlordPaymentInfo
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/bookings/"+seg(bookingID)+"/landlord-payment-info", nil, nil, &out, "Failed to fetch landlord payment info")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveBooking hides a booking from the caller's list.
func (c *Client) RemoveBooking(ctx context.Context, s domain.Session, bookingID string) error {
	q := url.Values{"userId": {s.UserID}}
	return c.doJSON(ctx, s.AccessToken, http.MethodPatch, "/bookings/"+seg(bookingID)+"/delete", q, nil, nil, "Failed to delete booking")
}

// UploadBookingTransfer stores the deposit transfer screenshot and returns its URL.
func (c *Client) UploadBookingTransfer(ctx context.Context, s domain.Session, bookingID string, img *upload.Image) (string, error) {
	part, ok := ImagePart("file", img)
	if !ok {
		return "", upload.ErrEmptyFile
	}
	var imageURL string
	err := c.doMultipart(ctx, s.AccessToken, http.MethodPost, "/bookings/"+seg(bookingID)+"/upload-bill-transfer", []Part{part}, &imageURL, "Failed to upload transfer image")
	if err != nil {
		return "", err
	}
	return imageURL, nil
}
