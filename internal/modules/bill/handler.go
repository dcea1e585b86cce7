package bill

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contracts/:id/bills", h.ListContract)
	rg.GET("/contracts/:id/bills/:billId/payment", h.Payment)
	rg.GET("/bills/:billId/download", h.Download)

	tenant := rg.Group("/bills", middleware.TenantOnly())
	{
		tenant.GET("", h.ListTenant)
		tenant.POST("/:billId/proof", h.UploadProof)
		tenant.POST("/:billId/confirm-transfer", h.ConfirmTransfer)
	}

	landlord := rg.Group("/landlord", middleware.LandlordOnly())
	{
		landlord.POST("/contracts/:id/bills", h.Create)
		landlord.PUT("/bills/:billId", h.Update)
		landlord.PUT("/bills/:billId/status", h.SetStatus)
		landlord.POST("/bills/:billId/confirm-paid", h.ConfirmPaid)
		landlord.DELETE("/bills/:billId", h.Delete)
	}
}

func (h *Handler) ListContract(c *gin.Context) {
	rows, err := h.service.ForContract(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bills": rows})
}

func (h *Handler) ListTenant(c *gin.Context) {
	rows, err := h.service.ForTenant(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bills": rows})
}

func (h *Handler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	in.ContractID = c.Param("id")
	b, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"bill": b})
}

func (h *Handler) Update(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	b, err := h.service.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("billId"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bill": b})
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationFailed(c, details)
		return
	}
	if err := h.service.SetStatus(c.Request.Context(), middleware.SessionFrom(c), c.Param("billId"), req.Status); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("billId")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Download(c *gin.Context) {
	id := c.Param("billId")
	d, err := h.service.Download(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.File(c, d, "bill_"+id+".pdf", "application/pdf")
}

func (h *Handler) UploadProof(c *gin.Context) {
	img, err := utils.OptionalImage(c, "proof", upload.MaxProofImage)
	if err != nil {
		h.fail(c, err)
		return
	}
	imageURL, err := h.service.UploadProof(c.Request.Context(), middleware.SessionFrom(c), c.Param("billId"), img)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Upload successful", "imageUrl": imageURL})
}

func (h *Handler) ConfirmTransfer(c *gin.Context) {
	var req ConfirmTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Bill) {
		return
	}
	row, err := h.service.ConfirmTransfer(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		h.failRow(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bill": row})
}

func (h *Handler) ConfirmPaid(c *gin.Context) {
	var req ConfirmPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Bill) {
		return
	}
	row, err := h.service.ConfirmPaid(c.Request.Context(), middleware.SessionFrom(c), req.Bill)
	if err != nil {
		h.failRow(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bill": row})
}

func (h *Handler) Payment(c *gin.Context) {
	resp, err := h.service.Payment(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), c.Param("billId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func bindInput(c *gin.Context) (domain.BillInput, bool) {
	var in domain.BillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return in, false
	}
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return in, false
	}
	return in, true
}

func bindRowID(c *gin.Context, b *domain.Bill) bool {
	id := c.Param("billId")
	if b.ID == "" {
		b.ID = id
	}
	if b.ID != id {
		response.ValidationFailed(c, map[string]string{"id": "must match the bill in the path"})
		return false
	}
	return true
}

func (h *Handler) failRow(c *gin.Context, err error, row Row) {
	if errors.Is(err, ErrInvalidTransition) {
		response.ErrorWithDetails(c, http.StatusConflict, "INVALID_TRANSITION", err.Error(), gin.H{"bill": row})
		return
	}
	h.fail(c, err)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTransferNotConfirmed):
		response.ValidationFailed(c, map[string]string{"transferConfirmed": "must be confirmed"})
	case errors.Is(err, ErrProofRequired):
		response.ValidationFailed(c, map[string]string{"proofUrl": "is required"})
	case errors.Is(err, ErrBillNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotParty):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Failure(c, err)
	}
}
