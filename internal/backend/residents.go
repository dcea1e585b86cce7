package backend

import (
	"context"
	"net/http"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

// residentData is the "data" part. Status defaults to PENDING.
type residentData struct {
	FullName     string                `json:"fullName"`
	IDNumber     string                `json:"idNumber"`
	Relationship string                `json:"relationship"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	Note         string                `json:"note"`
	Status       domain.ResidentStatus `json:"status"`
	ContractID   string                `json:"contractId,omitempty"`
}

func residentParts(in domain.ResidentInput, front, back *upload.Image) ([]Part, error) {
	status := in.Status
	if status == "" {
		status = domain.ResidentPending
	}
	data, err := JSONPart("data", residentData{
		FullName:     in.FullName,
		IDNumber:     in.IDNumber,
		Relationship: in.Relationship,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Note:         in.Note,
		Status:       status,
		ContractID:   in.ContractID,
	})
	if err != nil {
		return nil, err
	}
	parts := []Part{data}
	if p, ok := ImagePart("frontImage", front); ok {
		parts = append(parts, p)
	}
	if p, ok := ImagePart("backImage", back); ok {
		parts = append(parts, p)
	}
	return parts, nil
}

func (c *Client) ContractResidents(ctx context.Context, s domain.Session, contractID string) ([]domain.Resident, error) {
	var out []domain.Resident
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/temporary-residences/contract/"+seg(contractID), nil, nil, &out, "Failed to fetch residents")
	return out, err
}

func (c *Client) LandlordResidents(ctx context.Context, s domain.Session, landlordID string) ([]domain.Resident, error) {
	var out []domain.Resident
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/temporary-residences/landlord/"+seg(landlordID), nil, nil, &out, "Failed to fetch residents")
	return out, err
}

func (c *Client) TenantResidents(ctx context.Context, s domain.Session, tenantID string) ([]domain.Resident, error) {
	var out []domain.Resident
	err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/temporary-residences/tenant/"+seg(tenantID), nil, nil, &out, "Failed to fetch residents")
	return out, err
}

func (c *Client) CreateResident(ctx context.Context, s domain.Session, in domain.ResidentInput, front, back *upload.Image) (*domain.Resident, error) {
	parts, err := residentParts(in, front, back)
	if err != nil {
		return nil, err
	}
	var out domain.Resident
	if err := c.doMultipart(ctx, s.AccessToken, http.MethodPost, "/temporary-residences", parts, &out, "Failed to add resident"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateResident(ctx context.Context, s domain.Session, residentID string, in domain.ResidentInput, front, back *upload.Image) (*domain.Resident, error) {
	parts, err := residentParts(in, front, back)
	if err != nil {
		return nil, err
	}
	var out domain.Resident
	if err := c.doMultipart(ctx, s.AccessToken, http.MethodPut, "/temporary-residences/"+seg(residentID), parts, &out, "Failed to update resident"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResident(ctx context.Context, s domain.Session, residentID string) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodDelete, "/temporary-residences/"+seg(residentID), nil, nil, nil, "Failed to delete resident")
}
