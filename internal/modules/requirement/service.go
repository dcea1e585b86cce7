package requirement

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

var ErrInvalidTransition = errors.New("request has already been processed")

type Backend interface {
	CreateRequirement(ctx context.Context, s domain.Session, in domain.RequirementInput, img *upload.Image) error
	UpdateRequirementWithImage(ctx context.Context, s domain.Session, requirementID string, in domain.RequirementUpdate, img *upload.Image) error
	UploadRequirementImage(ctx context.Context, s domain.Session, requirementID string, img *upload.Image) error
	LandlordRequirements(ctx context.Context, s domain.Session, page, size int) (domain.Page[domain.Requirement], error)
	UserRequirements(ctx context.Context, s domain.Session, page, size int) (domain.Page[domain.Requirement], error)
	CompleteRequirement(ctx context.Context, s domain.Session, requirementID string) error
	RejectRequirement(ctx context.Context, s domain.Session, requirementID string) error
	UpdateRequirement(ctx context.Context, s domain.Session, in domain.RequirementUpdate) error
	LandlordByRoom(ctx context.Context, s domain.Session, roomID string) (*domain.LandlordRef, error)
}

type Notifier interface {
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
}

type Service struct {
	backend  Backend
	notifier Notifier
}

func NewService(backend Backend, notifier Notifier) *Service {
	return &Service{backend: backend, notifier: notifier}
}

func (s *Service) ForLandlord(ctx context.Context, sess domain.Session, page, size int) (domain.Page[Row], error) {
	p, err := s.backend.LandlordRequirements(ctx, sess, page, size)
	if err != nil {
		return domain.Page[Row]{}, err
	}
	return NewRows(true, p), nil
}

func (s *Service) ForTenant(ctx context.Context, sess domain.Session, page, size int) (domain.Page[Row], error) {
	p, err := s.backend.UserRequirements(ctx, sess, page, size)
	if err != nil {
		return domain.Page[Row]{}, err
	}
	return NewRows(false, p), nil
}

// Create files a maintenance request and tells the room's landlord.
func (s *Service) Create(ctx context.Context, sess domain.Session, in domain.RequirementInput, img *upload.Image) error {
	if err := s.backend.CreateRequirement(ctx, sess, in, img); err != nil {
		return err
	}

	landlord, err := s.backend.LandlordByRoom(ctx, sess, in.RoomID)
	if err != nil {
		log.Printf("notification_error type=%s room_id=%s error=%q", domain.NotificationRequest, in.RoomID, err.Error())
		return nil
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: landlord.ID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationRequest,
		Message:    "You have a new request from a tenant: " + in.Description,
	})
	return nil
}

// Edit changes the description and, when img is set, the photo.
func (s *Service) Edit(ctx context.Context, sess domain.Session, requirementID string, in domain.RequirementUpdate, img *upload.Image) error {
	in.ID = requirementID
	if img != nil {
		return s.backend.UpdateRequirementWithImage(ctx, sess, requirementID, in, img)
	}
	return s.backend.UpdateRequirement(ctx, sess, in)
}

// Complete marks an open request done, attaching the completion photo first when given.
func (s *Service) Complete(ctx context.Context, sess domain.Session, r domain.Requirement, img *upload.Image) (Row, error) {
	if !Allowed(true, r, ActionComplete) {
		return NewRow(true, r), ErrInvalidTransition
	}
	if img != nil {
		if err := s.backend.UploadRequirementImage(ctx, sess, r.ID, img); err != nil {
			return NewRow(true, r), err
		}
	}
	if err := s.backend.CompleteRequirement(ctx, sess, r.ID); err != nil {
		return NewRow(true, r), err
	}

	msg := "Request " + r.Description + " successfully processed by landlord."
	if img != nil {
		msg = fmt.Sprintf("Request %q has been completed by landlord.", r.Description)
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: r.UserID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationRequest,
		Message:    msg,
	})

	r.Status = domain.RequirementCompleted
	return NewRow(true, r), nil
}

func (s *Service) Reject(ctx context.Context, sess domain.Session, r domain.Requirement) (Row, error) {
	if !Allowed(true, r, ActionReject) {
		return NewRow(true, r), ErrInvalidTransition
	}
	if err := s.backend.RejectRequirement(ctx, sess, r.ID); err != nil {
		return NewRow(true, r), err
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: r.UserID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationRequest,
		Message:    "Request " + r.Description + " has been rejected by landlord.",
	})

	r.Status = domain.RequirementRejected
	return NewRow(true, r), nil
}

func (s *Service) notify(ctx context.Context, in domain.NotificationInput) {
	if s.notifier == nil || in.ReceiverID == "" {
		return
	}
	if _, err := s.notifier.Create(ctx, in); err != nil {
		log.Printf("notification_error type=%s receiver_id=%s error=%q", in.Type, in.ReceiverID, err.Error())
	}
}
