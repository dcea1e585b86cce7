package profile

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
	g := rg.Group("/profile")
	{
		g.GET("", h.GetMe)
		g.PATCH("", h.Update)
		g.GET("/bank-info", h.BankStatus)
		g.GET("/:userId", h.Get)
		g.GET("/:userId/bank-info", h.BankStatus)
	}
}

func (h *Handler) GetMe(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), middleware.SessionFrom(c), "")
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("userId"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

// Update accepts a multipart form: "data" (ProfileUpdate) and an optional "avatar".
func (h *Handler) Update(c *gin.Context) {
	var in domain.ProfileUpdate
	if err := utils.BindData(c, &in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(in); details != nil {
		response.ValidationFailed(c, details)
		return
	}
	avatar, err := utils.OptionalImage(c, "avatar", upload.MaxAvatarImage)
	if err != nil {
		response.Failure(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.SessionFrom(c), in, avatar)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) BankStatus(c *gin.Context) {
	ok, err := h.service.BankStatus(c.Request.Context(), middleware.SessionFrom(c), c.Param("userId"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hasBankInfo": ok})
}
