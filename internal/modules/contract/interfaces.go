package contract

import (
	"context"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

type Backend interface {
	TenantContracts(ctx context.Context, s domain.Session, tenantID string) ([]domain.Contract, error)
	LandlordContracts(ctx context.Context, s domain.Session, landlordID string, page, size int) (domain.Page[domain.Contract], error)
	RoomContracts(ctx context.Context, s domain.Session, roomID string) ([]domain.Contract, error)
	ContractsByStatus(ctx context.Context, s domain.Session, status domain.ContractStatus) ([]domain.Contract, error)
	Contract(ctx context.Context, s domain.Session, contractID string) (*domain.Contract, error)
	CreateContract(ctx context.Context, s domain.Session, in domain.ContractInput) (*domain.Contract, error)
	UpdateContract(ctx context.Context, s domain.Session, contractID string, in domain.ContractInput) (*domain.Contract, error)
	UploadContractImage(ctx context.Context, s domain.Session, contractID string, img *upload.Image) (*domain.Contract, error)
	DeleteContract(ctx context.Context, s domain.Session, contractID string) error
	ExportBills(ctx context.Context, s domain.Session, contractID, fromMonth, toMonth string) (*backend.Download, error)
}
