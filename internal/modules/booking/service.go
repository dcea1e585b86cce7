package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/qr"
	"rentalhub/internal/pkg/upload"
)

type Service struct {
	backend  Backend
	notifier Notifier
	now      func() time.Time
}

func NewService(backend Backend, notifier Notifier) *Service {
	return &Service{backend: backend, notifier: notifier, now: time.Now}
}

// LandlordRentals lists bookings on the landlord's rooms. page is 0-based.
func (s *Service) LandlordRentals(ctx context.Context, sess domain.Session, page, size int) (domain.Page[Row], error) {
	p, err := s.backend.LandlordBookings(ctx, sess, page, size)
	if err != nil {
		return domain.Page[Row]{}, err
	}
	return Rows(LandlordView, p, page, size, s.now()), nil
}

// RentalHistory lists the tenant's own bookings. page is 0-based.
func (s *Service) RentalHistory(ctx context.Context, sess domain.Session, page, size int) (domain.Page[Row], error) {
	p, err := s.backend.UserBookings(ctx, sess, page, size)
	if err != nil {
		return domain.Page[Row]{}, err
	}
	return Rows(TenantView, p, page, size, s.now()), nil
}

// Create books a room for the tenant and tells the landlord.
func (s *Service) Create(ctx context.Context, sess domain.Session, in domain.CreateBookingInput) (*domain.Booking, error) {
	b, err := s.backend.CreateBooking(ctx, sess, in)
	if err != nil {
		return nil, err
	}

	title := b.Room.Title
	if title == "" {
		title = in.RoomID
	}
	s.notifyLandlord(ctx, sess, in.RoomID, "You have a new booking from a tenant for room: "+title)
	return b, nil
}

// Transition applies a status action to the row the client holds.
// On failure the returned row is the input row.
func (s *Service) Transition(ctx context.Context, sess domain.Session, v Viewer, row domain.Booking, a Action) (Row, error) {
	now := s.now()
	unchanged := NewRow(v, row, now)

	// pay-deposit needs a transfer confirmation and proof; only PayDeposit can apply it.
	if v == TenantView && a == ActionPayDeposit {
		return unchanged, ErrProofRequired
	}
	t, ok := landlordTransitions[a]
	if !ok || v != LandlordView {
		if a.Known() {
			return unchanged, ErrInvalidTransition
		}
		return unchanged, ErrUnknownAction
	}
	if !Allowed(v, row, a, now) {
		return unchanged, ErrInvalidTransition
	}

	if err := s.backend.UpdateBookingStatus(ctx, sess, row.BookingID, t.to); err != nil {
		return unchanged, err
	}

	patched := row
	patched.Status = t.to
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: row.User.UserID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationBooking,
		Message:    fmt.Sprintf("Your booking has been %s by the landlord at room %s.", t.verb, row.Room.Title),
	})
	return NewRow(v, patched, now), nil
}

// PayDeposit moves an accepted booking to waiting-for-deposit once the tenant
// has confirmed the transfer and a proof image exists.
func (s *Service) PayDeposit(ctx context.Context, sess domain.Session, req DepositRequest, proof *upload.Image) (Row, error) {
	now := s.now()
	row := req.Booking
	unchanged := NewRow(TenantView, row, now)

	if !Allowed(TenantView, row, ActionPayDeposit, now) {
		return unchanged, ErrInvalidTransition
	}
	if !req.TransferConfirmed {
		return unchanged, ErrTransferNotConfirmed
	}
	if proof == nil && strings.TrimSpace(row.ImageProof.ValueOrZero()) == "" {
		return unchanged, ErrProofRequired
	}

	patched := row
	if proof != nil {
		imageURL, err := s.backend.UploadBookingTransfer(ctx, sess, row.BookingID, proof)
		if err != nil {
			return unchanged, err
		}
		patched.ImageProof = null.StringFrom(imageURL)
	}

	to := tenantTransitions[ActionPayDeposit].to
	if err := s.backend.UpdateBookingStatus(ctx, sess, row.BookingID, to); err != nil {
		return unchanged, err
	}
	patched.Status = to

	name := row.Room.OwnerName
	landlord, err := s.backend.LandlordByRoom(ctx, sess, row.Room.RoomID)
	if err != nil {
		log.Printf("notification_error type=%s room_id=%s error=%q", domain.NotificationBooking, row.Room.RoomID, err.Error())
		return NewRow(TenantView, patched, now), nil
	}
	if landlord.FullName != "" {
		name = landlord.FullName
	}
	if name == "" {
		name = "the landlord"
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: landlord.ID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationBooking,
		Message: fmt.Sprintf("Your booking deposit is confirmed and waiting for landlord's: %s confirmation at room %s.",
			name, row.Room.Title),
	})
	return NewRow(TenantView, patched, now), nil
}

// PaymentInfo returns the landlord's bank details with a deposit QR code.
func (s *Service) PaymentInfo(ctx context.Context, sess domain.Session, bookingID string) (*PaymentInfoResponse, error) {
	info, err := s.backend.LandlordPaymentInfo(ctx, sess, bookingID)
	if err != nil {
		return nil, err
	}

	resp := &PaymentInfoResponse{
		LandlordPaymentInfo: *info,
		Description:         qr.DepositDescription(bookingID),
	}
	qrURL, err := qr.PaymentURL(qr.Params{
		BinCode:     info.BinCode,
		BankNumber:  info.BankNumber,
		Amount:      info.DepositAmount,
		Description: resp.Description,
	})
	if err == nil {
		resp.QRCodeURL = qrURL
	}
	return resp, nil
}

// Remove hides a booking from the landlord's list.
func (s *Service) Remove(ctx context.Context, sess domain.Session, row domain.Booking) (Row, error) {
	now := s.now()
	if row.IsRemoved != 0 {
		return NewRow(LandlordView, row, now), ErrInvalidTransition
	}
	if err := s.backend.RemoveBooking(ctx, sess, row.BookingID); err != nil {
		return NewRow(LandlordView, row, now), err
	}
	row.IsRemoved = 1
	return NewRow(LandlordView, row, now), nil
}

func (s *Service) notifyLandlord(ctx context.Context, sess domain.Session, roomID, message string) {
	landlord, err := s.backend.LandlordByRoom(ctx, sess, roomID)
	if err != nil {
		log.Printf("notification_error type=%s room_id=%s error=%q", domain.NotificationBooking, roomID, err.Error())
		return
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: landlord.ID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationBooking,
		Message:    message,
	})
}

// notify never fails the caller.
func (s *Service) notify(ctx context.Context, in domain.NotificationInput) {
	if s.notifier == nil || in.ReceiverID == "" {
		return
	}
	if _, err := s.notifier.Create(ctx, in); err != nil {
		log.Printf("notification_error type=%s receiver_id=%s error=%q", in.Type, in.ReceiverID, err.Error())
	}
}
