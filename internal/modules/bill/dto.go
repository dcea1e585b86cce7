package bill

import "rentalhub/internal/domain"

// ConfirmTransferRequest is sent by the tenant after paying by bank transfer.
type ConfirmTransferRequest struct {
	Bill              domain.Bill `json:"bill"`
	ContractID        string      `json:"contractId"`
	TransferConfirmed bool        `json:"transferConfirmed"`
	ProofURL          string      `json:"proofUrl"`
}

type ConfirmPaidRequest struct {
	Bill domain.Bill `json:"bill"`
}

type StatusRequest struct {
	Status domain.BillStatus `json:"status" validate:"required,oneof=PENDING CONFIRMING PAID OVERDUE"`
}

type PaymentResponse struct {
	Bill        Row                 `json:"bill"`
	PaymentInfo *domain.PaymentInfo `json:"paymentInfo,omitempty"`
	Description string              `json:"description"`
	QRCodeURL   string              `json:"qrCodeUrl,omitempty"`
}
