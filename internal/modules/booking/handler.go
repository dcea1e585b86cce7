package booking

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

// RegisterRoutes expects rg to be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	landlord := rg.Group("/landlord/bookings", middleware.LandlordOnly())
	{
		landlord.GET("", h.ListRentals)
		landlord.POST("/:id/:action", h.LandlordAction)
	}

	tenant := rg.Group("/bookings", middleware.TenantOnly())
	{
		tenant.GET("", h.ListHistory)
		tenant.POST("", h.CreateBooking)
		tenant.GET("/:id/payment-info", h.PaymentInfo)
		tenant.POST("/:id/deposit", h.PayDeposit)
	}
}

func (h *Handler) ListRentals(c *gin.Context) {
	page, size := utils.PageParams(c)
	rows, err := h.service.LandlordRentals(c.Request.Context(), middleware.SessionFrom(c), page, size)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListHistory(c *gin.Context) {
	page, size := utils.PageParams(c)
	rows, err := h.service.RentalHistory(c.Request.Context(), middleware.SessionFrom(c), page, size)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req domain.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationFailed(c, details)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// LandlordAction handles accept, reject, confirm-deposit and remove.
func (h *Handler) LandlordAction(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Booking) {
		return
	}

	sess := middleware.SessionFrom(c)
	action := Action(c.Param("action"))

	var (
		row Row
		err error
	)
	if action == ActionRemove {
		row, err = h.service.Remove(c.Request.Context(), sess, req.Booking)
	} else {
		row, err = h.service.Transition(c.Request.Context(), sess, LandlordView, req.Booking, action)
	}
	if err != nil {
		h.fail(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": row})
}

// PayDeposit takes a multipart form: "data" (DepositRequest) and optional "proof".
func (h *Handler) PayDeposit(c *gin.Context) {
	var req DepositRequest
	if err := utils.BindData(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !bindRowID(c, &req.Booking) {
		return
	}

	proof, err := utils.OptionalImage(c, "proof", upload.MaxProofImage)
	if err != nil {
		response.Failure(c, err)
		return
	}

	row, err := h.service.PayDeposit(c.Request.Context(), middleware.SessionFrom(c), req, proof)
	if err != nil {
		h.fail(c, err, row)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": row})
}

func (h *Handler) PaymentInfo(c *gin.Context) {
	info, err := h.service.PaymentInfo(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func bindRowID(c *gin.Context, b *domain.Booking) bool {
	id := c.Param("id")
	if b.BookingID == "" {
		b.BookingID = id
	}
	if b.BookingID != id {
		response.ValidationFailed(c, map[string]string{"bookingId": "must match the booking in the path"})
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error, row Row) {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		response.ErrorWithDetails(c, http.StatusConflict, "INVALID_TRANSITION", err.Error(), gin.H{"booking": row})
	case errors.Is(err, ErrUnknownAction):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_ACTION", err.Error())
	case errors.Is(err, ErrTransferNotConfirmed):
		response.ValidationFailed(c, map[string]string{"transferConfirmed": "must be confirmed"})
	case errors.Is(err, ErrProofRequired):
		response.ValidationFailed(c, map[string]string{"proof": "is required"})
	default:
		response.Failure(c, err)
	}
}
