package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

// springPage is the Spring Data Page shape.
type springPage[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func (p springPage[T]) normalize() domain.Page[T] {
	out := domain.NewPage(p.Content, p.Number, p.Size, p.TotalElements)
	if p.TotalPages > 0 {
		out.TotalPages = p.TotalPages
	}
	return out
}

func (c *Client) TenantContracts(ctx context.Context, s domain.Session, tenantID string) ([]domain.Contract, error) {
	var out []domain.Contract
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/contracts/tenant/"+seg(tenantID), nil, nil, &out, "Failed to fetch contracts")
	return out, err
}

func (c *Client) LandlordContracts(ctx context.Context, s domain.Session, landlordID string, page, size int) (domain.Page[domain.Contract], error) {
	var raw springPage[domain.Contract]
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/contracts/landlord/"+seg(landlordID), pageQuery(page, size), nil, &raw, "Failed to fetch contracts")
	if err != nil {
		return domain.Page[domain.Contract]{}, err
	}
	return raw.normalize(), nil
}

func (c *Client) RoomContracts(ctx context.Context, s domain.Session, roomID string) ([]domain.Contract, error) {
	var out []domain.Contract
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/contracts/room/"+seg(roomID), nil, nil, &out, "Failed to fetch contracts")
	return out, err
}

func (c *Client) ContractsByStatus(ctx context.Context, s domain.Session, status domain.ContractStatus) ([]domain.Contract, error) {
	var out []domain.Contract
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, fmt.Sprintf("/contracts/status/%d", status), nil, nil, &out, "Failed to fetch contracts")
	return out, err
}

func (c *Client) Contract(ctx context.Context, s domain.Session, contractID string) (*domain.Contract, error) {
	var out domain.Contract
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/contracts/"+seg(contractID), nil, nil, &out, "Failed to fetch contract"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContract(ctx context.Context, s domain.Session, in domain.ContractInput) (*domain.Contract, error) {
	var out domain.Contract
	if err := c.doJSON(ctx, s.AccessToken, http.MethodPost, "/contracts", nil, in, &out, "Failed to create contract"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateContract(ctx context.Context, s domain.Session, contractID string, in domain.ContractInput) (*domain.Contract, error) {
	var out domain.Contract
	if err := c.doJSON(ctx, s.AccessToken, http.MethodPut, "/contracts/"+seg(contractID), nil, in, &out, "Failed to update contract"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadContractImage(ctx context.Context, s domain.Session, contractID string, img *upload.Image) (*domain.Contract, error) {
	part, ok := ImagePart("file", img)
	if !ok {
		return nil, upload.ErrEmptyFile
	}
	var out domain.Contract
	if err := c.doMultipart(ctx, s.AccessToken, http.MethodPut, "/contracts/"+seg(contractID)+"/image", []Part{part}, &out, "Failed to upload contract image"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteContract(ctx context.Context, s domain.Session, contractID string) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodDelete, "/contracts/"+seg(contractID), nil, nil, nil, "Failed to delete contract")
}

// ExportBills downloads the bills spreadsheet for months fromMonth..toMonth ("YYYY-MM").
func (c *Client) ExportBills(ctx context.Context, s domain.Session, contractID, fromMonth, toMonth string) (*Download, error) {
	q := url.Values{"fromMonth": {fromMonth}, "toMonth": {toMonth}}
	return c.download(ctx, s.AccessToken, "/contracts/"+seg(contractID)+"/bills/export", q, "Failed to export bills")
}
