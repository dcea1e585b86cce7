package backend

import (
	"context"
	"net/http"
	"net/url"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

func (c *Client) ContractBills(ctx context.Context, s domain.Session, contractID string) ([]domain.Bill, error) {
	var out []domain.Bill
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/bills/contract/"+seg(contractID), nil, nil, &out, "Failed to fetch bills")
	return out, err
}

func (c *Client) TenantBills(ctx context.Context, s domain.Session, tenantID string) ([]domain.Bill, error) {
	var out []domain.Bill
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/bills/tenant/"+seg(tenantID), nil, nil, &out, "Failed to fetch bills")
	return out, err
}

func (c *Client) CreateBill(ctx context.Context, s domain.Session, in domain.BillInput) (*domain.Bill, error) {
	var out domain.Bill
	if err := c.doJSON(ctx, s.AccessToken, http.MethodPost, "/bills", nil, in, &out, "Failed to create bill"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBill(ctx context.Context, s domain.Session, billID string, in domain.BillInput) (*domain.Bill, error) {
	var out domain.Bill
	if err := c.doJSON(ctx, s.AccessToken, http.MethodPut, "/bills/"+seg(billID), nil, in, &out, "Failed to update bill"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBillStatus(ctx context.Context, s domain.Session, billID string, status domain.BillStatus) error {
	q := url.Values{"status": {string(status)}}
	return c.doJSON(ctx, s.AccessToken, http.MethodPut, "/bills/"+seg(billID)+"/status", q, nil, nil, "Failed to update bill status")
}

func (c *Client) DeleteBill(ctx context.Context, s domain.Session, billID string) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodDelete, "/bills/"+seg(billID), nil, nil, nil, "Failed to delete bill")
}

// DownloadBill returns the bill PDF.
func (c *Client) DownloadBill(ctx context.Context, s domain.Session, billID string) (*Download, error) {
	return c.download(ctx, s.AccessToken, "/bills/"+seg(billID)+"/download", nil, "Failed to download bill")
}

// UploadBillProof stores a transfer screenshot for a bill and returns its URL.
// The backend answers with a plain-text URL or a JSON object carrying imageUrl.
func (c *Client) UploadBillProof(ctx context.Context, s domain.Session, billID string, img *upload.Image) (string, error) {
	part, ok := ImagePart("file", img)
	if !ok {
		return "", upload.ErrEmptyFile
	}
	var imageURL string
	if err := c.doMultipart(ctx, s.AccessToken, http.MethodPost, "/bills/"+seg(billID)+"/upload-image-proof", []Part{part}, &imageURL, "Failed to upload proof image"); err != nil {
		return "", err
	}
	return imageURL, nil
}
