package contract

import (
	"context"
	"errors"
	"time"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

var (
	ErrInvalidMonthRange = errors.New("fromMonth must not be after toMonth")
	ErrInvalidMonth      = errors.New("month must be formatted as YYYY-MM")
	ErrNotParty          = errors.New("caller is not a party to this contract")
)

const monthLayout = "2006-01"

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) ForTenant(ctx context.Context, sess domain.Session) ([]domain.Contract, error) {
	return s.backend.TenantContracts(ctx, sess, sess.UserID)
}

// ForLandlord pages the landlord's contracts, or filters all contracts by status when status is set.
func (s *Service) ForLandlord(ctx context.Context, sess domain.Session, page, size int, status *domain.ContractStatus) (domain.Page[domain.Contract], error) {
	if status == nil {
		return s.backend.LandlordContracts(ctx, sess, sess.UserID, page, size)
	}

	all, err := s.backend.ContractsByStatus(ctx, sess, *status)
	if err != nil {
		return domain.Page[domain.Contract]{}, err
	}
	own := make([]domain.Contract, 0, len(all))
	for _, c := range all {
		if c.LandlordID == sess.UserID {
			own = append(own, c)
		}
	}
	return domain.NewPage(window(own, page, size), page, size, int64(len(own))), nil
}

func (s *Service) ForRoom(ctx context.Context, sess domain.Session, roomID string) ([]domain.Contract, error) {
	return s.backend.RoomContracts(ctx, sess, roomID)
}

// Get returns a contract the caller is tenant or landlord of.
func (s *Service) Get(ctx context.Context, sess domain.Session, contractID string) (*domain.Contract, error) {
	c, err := s.backend.Contract(ctx, sess, contractID)
	if err != nil {
		return nil, err
	}
	if c.TenantID != sess.UserID && c.LandlordID != sess.UserID {
		return nil, ErrNotParty
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, sess domain.Session, in domain.ContractInput) (*domain.Contract, error) {
	in.LandlordID = sess.UserID
	return s.backend.CreateContract(ctx, sess, in)
}

func (s *Service) Update(ctx context.Context, sess domain.Session, contractID string, in domain.ContractInput) (*domain.Contract, error) {
	in.LandlordID = sess.UserID
	return s.backend.UpdateContract(ctx, sess, contractID, in)
}

func (s *Service) UploadImage(ctx context.Context, sess domain.Session, contractID string, img *upload.Image) (*domain.Contract, error) {
	if img == nil {
		return nil, upload.ErrEmptyFile
	}
	return s.backend.UploadContractImage(ctx, sess, contractID, img)
}

func (s *Service) Delete(ctx context.Context, sess domain.Session, contractID string) error {
	return s.backend.DeleteContract(ctx, sess, contractID)
}

// ExportBills fetches the bills spreadsheet for an inclusive month range.
func (s *Service) ExportBills(ctx context.Context, sess domain.Session, contractID, fromMonth, toMonth string) (*backend.Download, error) {
	from, err := time.Parse(monthLayout, fromMonth)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	to, err := time.Parse(monthLayout, toMonth)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	if from.After(to) {
		return nil, ErrInvalidMonthRange
	}
	return s.backend.ExportBills(ctx, sess, contractID, fromMonth, toMonth)
}

func window[T any](items []T, page, size int) []T {
	start := page * size
	if start >= len(items) || size <= 0 {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
