package bill

import (
	"context"
	"errors"
	"log"
	"strings"

	"gopkg.in/guregu/null.v4"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/qr"
	"rentalhub/internal/pkg/upload"
)

var (
	ErrInvalidTransition    = errors.New("action not allowed from current bill status")
	ErrTransferNotConfirmed = errors.New("transfer must be confirmed")
	ErrProofRequired        = errors.New("transfer proof image is required")
	ErrBillNotFound         = errors.New("bill not found in contract")
	ErrNotParty             = errors.New("caller is not a party to this contract")
)

type Service struct {
	backend  Backend
	notifier Notifier
}

func NewService(backend Backend, notifier Notifier) *Service {
	return &Service{backend: backend, notifier: notifier}
}

func (s *Service) ForContract(ctx context.Context, sess domain.Session, contractID string) ([]Row, error) {
	bills, err := s.backend.ContractBills(ctx, sess, contractID)
	if err != nil {
		return nil, err
	}
	return NewRows(sess.IsLandlord(), bills), nil
}

func (s *Service) ForTenant(ctx context.Context, sess domain.Session) ([]Row, error) {
	bills, err := s.backend.TenantBills(ctx, sess, sess.UserID)
	if err != nil {
		return nil, err
	}
	return NewRows(false, bills), nil
}

// Create adds a bill to a contract and tells the tenant.
func (s *Service) Create(ctx context.Context, sess domain.Session, in domain.BillInput) (*domain.Bill, error) {
	if in.TotalAmount == 0 {
		in.TotalAmount = in.Total()
	}
	b, err := s.backend.CreateBill(ctx, sess, in)
	if err != nil {
		return nil, err
	}

	c, err := s.backend.Contract(ctx, sess, in.ContractID)
	if err != nil {
		log.Printf("notification_error type=%s contract_id=%s error=%q", domain.NotificationPayment, in.ContractID, err.Error())
		return b, nil
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: c.TenantID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationPayment,
		Message:    "New bill added to your contract. Please check and make payment on time.",
		ContractID: c.ID,
	})
	return b, nil
}

func (s *Service) Update(ctx context.Context, sess domain.Session, billID string, in domain.BillInput) (*domain.Bill, error) {
	if in.TotalAmount == 0 {
		in.TotalAmount = in.Total()
	}
	return s.backend.UpdateBill(ctx, sess, billID, in)
}

func (s *Service) SetStatus(ctx context.Context, sess domain.Session, billID string, status domain.BillStatus) error {
	return s.backend.UpdateBillStatus(ctx, sess, billID, status)
}

func (s *Service) Delete(ctx context.Context, sess domain.Session, billID string) error {
	return s.backend.DeleteBill(ctx, sess, billID)
}

func (s *Service) Download(ctx context.Context, sess domain.Session, billID string) (*backend.Download, error) {
	return s.backend.DownloadBill(ctx, sess, billID)
}

// UploadProof stores the transfer screenshot and returns its URL.
func (s *Service) UploadProof(ctx context.Context, sess domain.Session, billID string, img *upload.Image) (string, error) {
	if img == nil {
		return "", upload.ErrEmptyFile
	}
	return s.backend.UploadBillProof(ctx, sess, billID, img)
}

// ConfirmTransfer marks a tenant's bank transfer as sent. It needs the
// confirmation flag and an uploaded proof; otherwise nothing is called.
func (s *Service) ConfirmTransfer(ctx context.Context, sess domain.Session, req ConfirmTransferRequest) (Row, error) {
	b := req.Bill
	unchanged := NewRow(false, b)

	if !Allowed(false, b, ActionPay) {
		return unchanged, ErrInvalidTransition
	}
	if !req.TransferConfirmed {
		return unchanged, ErrTransferNotConfirmed
	}
	proof := strings.TrimSpace(req.ProofURL)
	if proof == "" {
		proof = strings.TrimSpace(b.ImageProof.ValueOrZero())
	}
	if proof == "" {
		return unchanged, ErrProofRequired
	}

	if err := s.backend.UpdateBillStatus(ctx, sess, b.ID, domain.BillConfirming); err != nil {
		return unchanged, err
	}

	patched := b
	patched.Status = domain.BillConfirming
	patched.ImageProof = null.StringFrom(proof)

	contractID := req.ContractID
	if contractID == "" {
		contractID = b.ContractID
	}
	c, err := s.backend.Contract(ctx, sess, contractID)
	if err != nil {
		log.Printf("notification_error type=%s contract_id=%s error=%q", domain.NotificationPayment, contractID, err.Error())
		return NewRow(false, patched), nil
	}
	s.notify(ctx, domain.NotificationInput{
		ReceiverID: c.LandlordID,
		SenderID:   sess.UserID,
		Type:       domain.NotificationPayment,
		Message:    "Transfer confirmation submitted successfully for room: " + c.ContractName + ". Please verify the payment.",
		ContractID: c.ID,
	})
	return NewRow(false, patched), nil
}

// ConfirmPaid is the landlord accepting a confirming transfer.
func (s *Service) ConfirmPaid(ctx context.Context, sess domain.Session, b domain.Bill) (Row, error) {
	if !Allowed(true, b, ActionConfirmPaid) {
		return NewRow(true, b), ErrInvalidTransition
	}
	if err := s.backend.UpdateBillStatus(ctx, sess, b.ID, domain.BillPaid); err != nil {
		return NewRow(true, b), err
	}
	b.Status = domain.BillPaid
	return NewRow(true, b), nil
}

// Payment returns the bill with the landlord's bank details and a QR code for it.
func (s *Service) Payment(ctx context.Context, sess domain.Session, contractID, billID string) (*PaymentResponse, error) {
	c, err := s.backend.Contract(ctx, sess, contractID)
	if err != nil {
		return nil, err
	}
	if c.TenantID != sess.UserID && c.LandlordID != sess.UserID {
		return nil, ErrNotParty
	}

	var found *domain.Bill
	for i := range c.Bills {
		if c.Bills[i].ID == billID {
			found = &c.Bills[i]
			break
		}
	}
	if found == nil {
		return nil, ErrBillNotFound
	}

	resp := &PaymentResponse{
		Bill:        NewRow(sess.IsLandlord(), *found),
		PaymentInfo: c.LandlordPaymentInfo,
		Description: qr.BillDescription(found.Month, c.ID),
	}
	if c.LandlordPaymentInfo != nil {
		qrURL, err := qr.PaymentURL(qr.Params{
			BinCode:     c.LandlordPaymentInfo.BinCode,
			BankNumber:  c.LandlordPaymentInfo.BankNumber,
			Amount:      found.TotalAmount,
			Description: resp.Description,
		})
		if err == nil {
			resp.QRCodeURL = qrURL
		}
	}
	return resp, nil
}

func (s *Service) notify(ctx context.Context, in domain.NotificationInput) {
	if s.notifier == nil || in.ReceiverID == "" {
		return
	}
	if _, err := s.notifier.Create(ctx, in); err != nil {
		log.Printf("notification_error type=%s receiver_id=%s error=%q", in.Type, in.ReceiverID, err.Error())
	}
}
