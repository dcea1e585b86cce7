package contract

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/pkg/upload"
	"rentalhub/internal/pkg/utils"
	"rentalhub/internal/pkg/validator"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contracts/:id", h.Get)
	rg.GET("/contracts", middleware.TenantOnly(), h.ListTenant)

	landlord := rg.Group("/landlord", middleware.LandlordOnly())
	{
		landlord.GET("/contracts", h.ListLandlord)
		landlord.GET("/rooms/:roomId/contracts", h.ListRoom)
		landlord.POST("/contracts", h.Create)
		landlord.PUT("/contracts/:id", h.Update)
		landlord.DELETE("/contracts/:id", h.Delete)
		landlord.PUT("/contracts/:id/image", h.UploadImage)
		landlord.GET("/contracts/:id/bills/export", h.ExportBills)
	}
}

func (h *Handler) ListTenant(c *gin.Context) {
	contracts, err := h.service.ForTenant(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contracts": contracts})
}

func (h *Handler) ListLandlord(c *gin.Context) {
	page, size := utils.PageParams(c)

	var status *domain.ContractStatus
	if raw := c.Query("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 3 {
			response.ValidationFailed(c, map[string]string{"status": "must be 0, 1, 2 or 3"})
			return
		}
		st := domain.ContractStatus(n)
		status = &st
	}

	p, err := h.service.ForLandlord(c.Request.Context(), middleware.SessionFrom(c), page, size, status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListRoom(c *gin.Context) {
	contracts, err := h.service.ForRoom(c.Request.Context(), middleware.SessionFrom(c), c.Param("roomId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contracts": contracts})
}

func (h *Handler) Get(c *gin.Context) {
	contract, err := h.service.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) Create(c *gin.Context) {
	in, ok := bindInput(c, middleware.SessionFrom(c).UserID)
	if !ok {
		return
	}
	contract, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contract": contract})
}

func (h *Handler) Update(c *gin.Context) {
	in, ok := bindInput(c, middleware.SessionFrom(c).UserID)
	if !ok {
		return
	}
	contract, err := h.service.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) UploadImage(c *gin.Context) {
	img, err := utils.OptionalImage(c, "image", upload.MaxContractImage)
	if err != nil {
		h.fail(c, err)
		return
	}
	contract, err := h.service.UploadImage(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), img)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) ExportBills(c *gin.Context) {
	id := c.Param("id")
	from, to := c.Query("fromMonth"), c.Query("toMonth")
	d, err := h.service.ExportBills(c.Request.Context(), middleware.SessionFrom(c), id, from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.File(c, d, "bills_"+id+"_"+from+"_"+to+".xlsx", xlsxType)
}

// bindInput decodes and validates a contract form. The caller is always the landlord.
func bindInput(c *gin.Context, landlordID string) (domain.ContractInput, bool) {
	var in domain.ContractInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return in, false
	}
	in.LandlordID = landlordID
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return in, false
	}
	return in, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidMonth):
		response.ValidationFailed(c, map[string]string{"fromMonth": "must match 2006-01", "toMonth": "must match 2006-01"})
	case errors.Is(err, ErrInvalidMonthRange):
		response.ValidationFailed(c, map[string]string{"toMonth": "must not be before fromMonth"})
	case errors.Is(err, ErrNotParty):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Failure(c, err)
	}
}
