package booking

import (
	"context"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

// Backend is the slice of the REST backend client bookings use.
type Backend interface {
	CreateBooking(ctx context.Context, s domain.Session, in domain.CreateBookingInput) (*domain.Booking, error)
	UserBookings(ctx context.Context, s domain.Session, page, size int) (*domain.BookingPage, error)
	LandlordBookings(ctx context.Context, s domain.Session, page, size int) (*domain.BookingPage, error)
	UpdateBookingStatus(ctx context.Context, s domain.Session, bookingID string, newStatus domain.BookingStatus) error
	LandlordPaymentInfo(ctx context.Context, s domain.Session, bookingID string) (*domain.LandlordPaymentInfo, error)
	RemoveBooking(ctx context.Context, s domain.Session, bookingID string) error
	UploadBookingTransfer(ctx context.Context, s domain.Session, bookingID string, img *upload.Image) (string, error)
	LandlordByRoom(ctx context.Context, s domain.Session, roomID string) (*domain.LandlordRef, error)
}

// Notifier stores a notification document and fans it out.
type Notifier interface {
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
}
