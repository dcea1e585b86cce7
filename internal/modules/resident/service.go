package resident

import (
	"context"
	"fmt"
	"log"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

type Backend interface {
	ContractResidents(ctx context.Context, s domain.Session, contractID string) ([]domain.Resident, error)
	LandlordResidents(ctx context.Context, s domain.Session, landlordID string) ([]domain.Resident, error)
	TenantResidents(ctx context.Context, s domain.Session, tenantID string) ([]domain.Resident, error)
	CreateResident(ctx context.Context, s domain.Session, in domain.ResidentInput, front, back *upload.Image) (*domain.Resident, error)
	UpdateResident(ctx context.Context, s domain.Session, residentID string, in domain.ResidentInput, front, back *upload.Image) (*domain.Resident, error)
	DeleteResident(ctx context.Context, s domain.Session, residentID string) error
	Contract(ctx context.Context, s domain.Session, contractID string) (*domain.Contract, error)
}

type Notifier interface {
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
}

// IDCards are the optional ID card scans sent with a resident form.
type IDCards struct {
	Front *upload.Image
	Back  *upload.Image
}

type Service struct {
	backend  Backend
	notifier Notifier
}

func NewService(backend Backend, notifier Notifier) *Service {
	return &Service{backend: backend, notifier: notifier}
}

func (s *Service) ForContract(ctx context.Context, sess domain.Session, contractID string) ([]domain.Resident, error) {
	return s.backend.ContractResidents(ctx, sess, contractID)
}

// Mine lists residents on the caller's contracts, from whichever side they are on.
func (s *Service) Mine(ctx context.Context, sess domain.Session) ([]domain.Resident, error) {
	if sess.IsLandlord() {
		return s.backend.LandlordResidents(ctx, sess, sess.UserID)
	}
	return s.backend.TenantResidents(ctx, sess, sess.UserID)
}

// Add registers a resident. When a tenant adds one the landlord is told.
func (s *Service) Add(ctx context.Context, sess domain.Session, in domain.ResidentInput, cards IDCards) (*domain.Resident, error) {
	if in.Status == "" {
		in.Status = domain.ResidentPending
	}
	r, err := s.backend.CreateResident(ctx, sess, in, cards.Front, cards.Back)
	if err != nil {
		return nil, err
	}
	if sess.IsLandlord() {
		return r, nil
	}

	c, err := s.backend.Contract(ctx, sess, in.ContractID)
	if err != nil {
		log.Printf("notification_error type=%s contract_id=%s error=%q", domain.NotificationResident, in.ContractID, err.Error())
		return r, nil
	}
	if s.notifier != nil && c.LandlordID != "" {
		_, err := s.notifier.Create(ctx, domain.NotificationInput{
			ReceiverID: c.LandlordID,
			SenderID:   sess.UserID,
			Type:       domain.NotificationResident,
			Message:    fmt.Sprintf("New resident %s was registered for contract %s. Please review.", in.FullName, c.ContractName),
			ContractID: c.ID,
		})
		if err != nil {
			log.Printf("notification_error type=%s receiver_id=%s error=%q", domain.NotificationResident, c.LandlordID, err.Error())
		}
	}
	return r, nil
}

func (s *Service) Edit(ctx context.Context, sess domain.Session, residentID string, in domain.ResidentInput, cards IDCards) (*domain.Resident, error) {
	return s.backend.UpdateResident(ctx, sess, residentID, in, cards.Front, cards.Back)
}

func (s *Service) Remove(ctx context.Context, sess domain.Session, residentID string) error {
	return s.backend.DeleteResident(ctx, sess, residentID)
}
