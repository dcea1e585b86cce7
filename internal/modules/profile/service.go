package profile

import (
	"context"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

type Backend interface {
	Profile(ctx context.Context, s domain.Session, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, s domain.Session, in domain.ProfileUpdate, avatar *upload.Image) (*domain.Profile, error)
	HasBankInfo(ctx context.Context, s domain.Session, userID string) (bool, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Get returns userID's profile, or the caller's when userID is empty.
func (s *Service) Get(ctx context.Context, sess domain.Session, userID string) (*domain.Profile, error) {
	if userID == "" {
		userID = sess.UserID
	}
	return s.backend.Profile(ctx, sess, userID)
}

func (s *Service) Update(ctx context.Context, sess domain.Session, in domain.ProfileUpdate, avatar *upload.Image) (*domain.Profile, error) {
	return s.backend.UpdateProfile(ctx, sess, in, avatar)
}

// BankStatus reports whether the landlord can receive deposits. A landlord without
// bank details gets no QR code on the payment screens.
func (s *Service) BankStatus(ctx context.Context, sess domain.Session, landlordID string) (bool, error) {
	if landlordID == "" {
		landlordID = sess.UserID
	}
	return s.backend.HasBankInfo(ctx, sess, landlordID)
}
