package requirement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/pkg/upload"
	"rentalhub/internal/pkg/utils"
	"rentalhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RowRequest carries the request row the landlord acted on.
type RowRequest struct {
	Requirement domain.Requirement `json:"requirement"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tenant := rg.Group("/requirements", middleware.TenantOnly())
	{
		tenant.GET("", h.ListTenant)
		tenant.POST("", h.Create)
		tenant.PUT("/:id", h.Edit)
	}

	landlord := rg.Group("/landlord/requirements", middleware.LandlordOnly())
	{
		landlord.GET("", h.ListLandlord)
		landlord.POST("/:id/complete", h.Complete)
		landlord.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) ListTenant(c *gin.Context) {
	page, size := utils.PageParams(c)
	p, err := h.service.ForTenant(c.Request.Context(), middleware.SessionFrom(c), page, size)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListLandlord(c *gin.Context) {
	page, size := utils.PageParams(c)
	p, err := h.service.ForLandlord(c.Request.Context(), middleware.SessionFrom(c), page, size)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var in domain.RequirementInput
	if err := utils.BindData(c, &in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return
	}
	img, err := utils.OptionalImage(c, "image", upload.MaxRequestImage)
	if err != nil {
		response.Failure(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), in, img); err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Request created successfully"})
}

func (h *Handler) Edit(c *gin.Context) {
	var in domain.RequirementUpdate
	if err := utils.BindData(c, &in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return
	}
	img, err := utils.OptionalImage(c, "image", upload.MaxRequestImage)
	if err != nil {
		response.Failure(c, err)
		return
	}

	if err := h.service.Edit(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), in, img); err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Request updated successfully"})
}

// Complete accepts a multipart form: "data" (RowRequest) and an optional "image".
func (h *Handler) Complete(c *gin.Context) {
	var req RowRequest
	if err := utils.BindData(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Requirement) {
		return
	}
	img, err := utils.OptionalImage(c, "image", upload.MaxCompletionImage)
	if err != nil {
		response.Failure(c, err)
		return
	}

	row, err := h.service.Complete(c.Request.Context(), middleware.SessionFrom(c), req.Requirement, img)
	if err != nil {
		h.fail(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirement": row})
}

func (h *Handler) Reject(c *gin.Context) {
	var req RowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Requirement) {
		return
	}

	row, err := h.service.Reject(c.Request.Context(), middleware.SessionFrom(c), req.Requirement)
	if err != nil {
		h.fail(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirement": row})
}

func bindRowID(c *gin.Context, r *domain.Requirement) bool {
	id := c.Param("id")
	if r.ID == "" {
		r.ID = id
	}
	if r.ID != id {
		response.ValidationFailed(c, map[string]string{"id": "must match the request in the path"})
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error, row Row) {
	if errors.Is(err, ErrInvalidTransition) {
		response.ErrorWithDetails(c, http.StatusConflict, "INVALID_TRANSITION", err.Error(), gin.H{"requirement": row})
		return
	}
	response.Failure(c, err)
}
