package booking

import "rentalhub/internal/domain"

// TransitionRequest carries the row the client is looking at.
type TransitionRequest struct {
	Booking domain.Booking `json:"booking"`
}

// DepositRequest is the "data" part of the pay-deposit form.
type DepositRequest struct {
	Booking           domain.Booking `json:"booking"`
	TransferConfirmed bool           `json:"transferConfirmed"`
}

type PaymentInfoResponse struct {
	domain.LandlordPaymentInfo
	QRCodeURL   string `json:"qrCodeUrl,omitempty"`
	Description string `json:"description"`
}
