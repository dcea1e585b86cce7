package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/session", h.Session)
}

// Login exchanges backend credentials for a session token.
// @Summary		Log in
// @Description	Authenticates against the backend and returns a session JWT carrying the user id, primary role and backend access token.
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"username and password"
// @Success		200	{object}		map[string]interface{} "token and user"
// @Failure		400	{object}		map[string]interface{} "validation error"
// @Failure		401	{object}		map[string]interface{} "wrong username or password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
			return
		}
		if errors.Is(err, ErrNoAccessToken) {
			response.Error(c, http.StatusBadGateway, "BACKEND_ERROR", "Login failed")
			return
		}
		response.Failure(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Session echoes the authenticated caller.
func (h *Handler) Session(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	response.Success(c, http.StatusOK, gin.H{
		"userId":     sess.UserID,
		"role":       sess.Role,
		"isLandlord": sess.IsLandlord(),
	})
}
