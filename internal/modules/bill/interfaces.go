package bill

import (
	"context"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

type Backend interface {
	ContractBills(ctx context.Context, s domain.Session, contractID string) ([]domain.Bill, error)
	TenantBills(ctx context.Context, s domain.Session, tenantID string) ([]domain.Bill, error)
	CreateBill(ctx context.Context, s domain.Session, in domain.BillInput) (*domain.Bill, error)
	UpdateBill(ctx context.Context, s domain.Session, billID string, in domain.BillInput) (*domain.Bill, error)
	UpdateBillStatus(ctx context.Context, s domain.Session, billID string, status domain.BillStatus) error
	DeleteBill(ctx context.Context, s domain.Session, billID string) error
	DownloadBill(ctx context.Context, s domain.Session, billID string) (*backend.Download, error)
	UploadBillProof(ctx context.Context, s domain.Session, billID string, img *upload.Image) (string, error)
	Contract(ctx context.Context, s domain.Session, contractID string) (*domain.Contract, error)
}

type Notifier interface {
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
}
