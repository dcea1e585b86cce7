package resident

import (
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
	rg.GET("/contracts/:id/residents", h.ListContract)
	rg.POST("/contracts/:id/residents", h.Add)
	rg.GET("/residents", h.ListMine)
	rg.PUT("/residents/:residentId", h.Edit)
	rg.DELETE("/residents/:residentId", h.Remove)
}

func (h *Handler) ListContract(c *gin.Context) {
	residents, err := h.service.ForContract(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"residents": residents})
}

func (h *Handler) ListMine(c *gin.Context) {
	residents, err := h.service.Mine(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"residents": residents})
}

func (h *Handler) Add(c *gin.Context) {
	in, cards, ok := bindForm(c)
	if !ok {
		return
	}
	in.ContractID = c.Param("id")
	r, err := h.service.Add(c.Request.Context(), middleware.SessionFrom(c), in, cards)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"resident": r})
}

func (h *Handler) Edit(c *gin.Context) {
	in, cards, ok := bindForm(c)
	if !ok {
		return
	}
	r, err := h.service.Edit(c.Request.Context(), middleware.SessionFrom(c), c.Param("residentId"), in, cards)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resident": r})
}

func (h *Handler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), middleware.SessionFrom(c), c.Param("residentId")); err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// bindForm reads the "data" part and both ID card images, validating everything before any backend call.
func bindForm(c *gin.Context) (domain.ResidentInput, IDCards, bool) {
	var in domain.ResidentInput
	if err := utils.BindData(c, &in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return in, IDCards{}, false
	}
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return in, IDCards{}, false
	}

	var cards IDCards
	var err error
	if cards.Front, err = utils.OptionalImage(c, "frontImage", upload.MaxIDCardImage); err != nil {
		response.Failure(c, err)
		return in, IDCards{}, false
	}
	if cards.Back, err = utils.OptionalImage(c, "backImage", upload.MaxIDCardImage); err != nil {
		response.Failure(c, err)
		return in, IDCards{}, false
	}
	return in, cards, true
}
