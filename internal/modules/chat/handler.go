package chat

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes mounts /chat. Live messages arrive on the notification socket as chat_message events.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/conversations", h.ListConversations)
		chatGroup.GET("/conversations/:id/messages", h.GetMessages)
		chatGroup.POST("/conversations/:id/read", h.MarkAsRead)
		chatGroup.POST("/messages", h.SendMessage)
		chatGroup.DELETE("/messages/:messageId", h.DeleteMessage)
		chatGroup.GET("/unread", h.Unread)
	}
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.service.Conversations(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to get conversations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

// GetMessages pages backwards with ?before=<RFC3339 createdAt>.
func (h *Handler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var before *time.Time
	if v := c.Query("before"); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			response.ValidationFailed(c, map[string]string{"before": "must be an RFC3339 timestamp"})
			return
		}
		before = &t
	}

	res, err := h.service.Messages(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), limit, before)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("messageId")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) Unread(c *gin.Context) {
	res, err := h.service.Unread(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to count unread messages")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrNotSender):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrMessageNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrCannotMessageSelf), errors.Is(err, ErrUnknownType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "CHAT_ERROR", "Chat request failed")
	}
}
