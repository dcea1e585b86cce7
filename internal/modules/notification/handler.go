package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/realtime"
)

type Handler struct {
	service *Service
	subs    SubscriptionStore
	hub     *realtime.Hub
	pool    *WorkerPool
}

// NewHandler takes a nil pool when web push is disabled.
func NewHandler(service *Service, subs SubscriptionStore, hub *realtime.Hub, pool *WorkerPool) *Handler {
	return &Handler{service: service, subs: subs, hub: hub, pool: pool}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.PATCH("/read-all", h.MarkAllAsRead)
	}

	push := protected.Group("/push")
	{
		push.GET("/vapid-public-key", h.GetVAPIDPublicKey)
		push.PUT("/subscriptions", h.PutSubscription)
		push.DELETE("/subscriptions", h.DeleteSubscription)
	}
}

// RegisterInternalRoutes mounts POST /notifications for the REST backend on a group
// authenticated with middleware.InternalTokenAuth.
func (h *Handler) RegisterInternalRoutes(internal *gin.RouterGroup) {
	internal.POST("/notifications", h.Publish)
}

// RegisterSocket mounts GET /ws on a group authenticated with middleware.QueryTokenAuth.
func (h *Handler) RegisterSocket(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Subscribe)
}

func (h *Handler) GetNotifications(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	list, err := h.service.List(c.Request.Context(), sess.UserID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if err := h.service.MarkRead(c.Request.Context(), sess.UserID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	res, err := h.service.MarkAllRead(c.Request.Context(), sess.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Publish stores a notification sent by another service and fans it out like a local one.
func (h *Handler) Publish(c *gin.Context) {
	var in domain.NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	n, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidNotification) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create notification")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}

func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	key := h.pool.PublicKey()
	if key == "" {
		response.Error(c, http.StatusServiceUnavailable, "PUSH_DISABLED", "VAPID keys are not configured")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"publicKey": key})
}

func (h *Handler) PutSubscription(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub := &domain.PushSubscription{
		Endpoint:  req.Endpoint,
		UserID:    middleware.SessionFrom(c).UserID,
		P256DH:    req.Keys.P256DH,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.subs.Upsert(c.Request.Context(), sub); err != nil {
		response.Error(c, http.StatusInternalServerError, "SUBSCRIBE_FAILED", "Failed to save subscription")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"endpoint": sub.Endpoint})
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.subs.DeleteForUser(c.Request.Context(), middleware.SessionFrom(c).UserID, req.Endpoint); err != nil {
		response.Error(c, http.StatusInternalServerError, "UNSUBSCRIBE_FAILED", "Failed to delete subscription")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

// Subscribe upgrades to a websocket. The first frame is a snapshot of the caller's
// notifications, then every new one arrives as an "added" event. The socket is
// registered before the snapshot is read, so nothing created in between is lost.
func (h *Handler) Subscribe(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_error user_id=%s error=%q", sess.UserID, err.Error())
		return
	}
	ctx := c.Request.Context()
	h.hub.Serve(conn, sess.UserID, func() (realtime.Event, []string, error) {
		return h.service.Snapshot(ctx, sess.UserID)
	})
}
