package backend

import (
	"context"
	"net/http"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

// requirementPage is the backend's own paging shape for requirements.
type requirementPage struct {
	Data         []domain.Requirement `json:"data"`
	PageNumber   int                  `json:"pageNumber"`
	PageSize     int                  `json:"pageSize"`
	TotalRecords int64                `json:"totalRecords"`
	TotalPages   int                  `json:"totalPages"`
}

func (p requirementPage) normalize() domain.Page[domain.Requirement] {
	out := domain.NewPage(p.Data, p.PageNumber, p.PageSize, p.TotalRecords)
	if p.TotalPages > 0 {
		out.TotalPages = p.TotalPages
	}
	return out
}

func (c *Client) CreateRequirement(ctx context.Context, s domain.Session, in domain.RequirementInput, img *upload.Image) error {
	in.UserID = s.UserID
	data, err := JSONPart("data", in)
	if err != nil {
		return err
	}
	parts := []Part{data}
	if p, ok := ImagePart("image", img); ok {
		parts = append(parts, p)
	}
	return c.doMultipart(ctx, s.AccessToken, http.MethodPost, "/requirements/request-room-with-image", parts, nil, "Failed to send request")
}

func (c *Client) UpdateRequirementWithImage(ctx context.Context, s domain.Session, requirementID string, in domain.RequirementUpdate, img *upload.Image) error {
	in.ID = requirementID
	data, err := JSONPart("data", in)
	if err != nil {
		return err
	}
	parts := []Part{data}
	if p, ok := ImagePart("image", img); ok {
		parts = append(parts, p)
	}
	return c.doMultipart(ctx, s.AccessToken, http.MethodPatch, "/requirements/"+seg(requirementID)+"/update-with-image", parts, nil, "Failed to update request")
}

// UploadRequirementImage attaches the landlord's completion photo.
func (c *Client) UploadRequirementImage(ctx context.Context, s domain.Session, requirementID string, img *upload.Image) error {
	part, ok := ImagePart("image", img)
	if !ok {
		return upload.ErrEmptyFile
	}
	return c.doMultipart(ctx, s.AccessToken, http.MethodPost, "/requirements/"+seg(requirementID)+"/upload-image", []Part{part}, nil, "Failed to upload image")
}

func (c *Client) LandlordRequirements(ctx context.Context, s domain.Session, page, size int) (domain.Page[domain.Requirement], error) {
	var raw requirementPage
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/requirements/landlord/"+seg(s.UserID)+"/requests", pageQuery(page, size), nil, &raw, "Failed to fetch requests"); err != nil {
		return domain.Page[domain.Requirement]{}, err
	}
	return raw.normalize(), nil
}

func (c *Client) UserRequirements(ctx context.Context, s domain.Session, page, size int) (domain.Page[domain.Requirement], error) {
	var raw requirementPage
	if err := c.doJSON(ctx, s.AccessToken, http.MethodGet, "/requirements/user/"+seg(s.UserID)+"/requests", pageQuery(page, size), nil, &raw, "Failed to fetch requests"); err != nil {
		return domain.Page[domain.Requirement]{}, err
	}
	return raw.normalize(), nil
}

func (c *Client) CompleteRequirement(ctx context.Context, s domain.Session, requirementID string) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodPatch, "/requirements/"+seg(requirementID)+"/status", nil, nil, nil, "Failed to update request status")
}

func (c *Client) RejectRequirement(ctx context.Context, s domain.Session, requirementID string) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodPatch, "/requirements/"+seg(requirementID)+"/reject", nil, nil, nil, "Failed to reject request")
}

func (c *Client) UpdateRequirement(ctx context.Context, s domain.Session, in domain.RequirementUpdate) error {
	return c.doJSON(ctx, s.AccessToken, http.MethodPatch, "/requirements/update", nil, in, nil, "Failed to update request")
}
