package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"rentalhub/internal/backend"
	"rentalhub/internal/config"
	"rentalhub/internal/middleware"
	"rentalhub/internal/modules/auth"
	"rentalhub/internal/modules/bill"
	"rentalhub/internal/modules/booking"
	"rentalhub/internal/modules/chat"
	"rentalhub/internal/modules/contract"
	"rentalhub/internal/modules/notification"
	"rentalhub/internal/modules/profile"
	"rentalhub/internal/modules/requirement"
	"rentalhub/internal/modules/resident"
	jwtsvc "rentalhub/internal/pkg/jwt"
	"rentalhub/internal/realtime"
	"rentalhub/internal/repository"
)

type app struct {
	router        *gin.Engine
	hub           *realtime.Hub
	notifications *notification.Service
}

// newApp wires every module onto one gin engine. pool is nil when web push is disabled.
func newApp(cfg *config.Config, db *gorm.DB, api *backend.Client, j *jwtsvc.Service, pool *notification.WorkerPool) *app {
	hub := realtime.NewHub()
	subscriptionRepo := repository.NewPushSubscriptionRepository(db)

	var dispatcher notification.Dispatcher
	if pool != nil {
		dispatcher = pool
	}
	notificationService := notification.NewService(repository.NewNotificationRepository(db), hub, dispatcher)
	notificationHandler := notification.NewHandler(notificationService, subscriptionRepo, hub, pool)

	authHandler := auth.NewHandler(auth.NewService(api, j, cfg.Auth.TTL))
	bookingHandler := booking.NewHandler(booking.NewService(api, notificationService))
	contractHandler := contract.NewHandler(contract.NewService(api))
	billHandler := bill.NewHandler(bill.NewService(api, notificationService))
	residentHandler := resident.NewHandler(resident.NewService(api, notificationService))
	requirementHandler := requirement.NewHandler(requirement.NewService(api, notificationService))
	profileHandler := profile.NewHandler(profile.NewService(api))
	chatHandler := chat.NewHandler(chat.NewService(repository.NewChatRepository(db), hub))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.AppEnv == "dev" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins...))
	r.Use(middleware.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "online": hub.OnlineCount()})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		if cfg.Internal.Token != "" {
			notificationHandler.RegisterInternalRoutes(v1.Group("/internal", middleware.InternalTokenAuth(cfg.Internal.Token, cfg.Internal.AllowedIPs)))
		}

		// websocket upgrades carry the token in the query string
		notificationHandler.RegisterSocket(v1.Group("", middleware.QueryTokenAuth(j)))

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			contractHandler.RegisterRoutes(protected)
			billHandler.RegisterRoutes(protected)
			residentHandler.RegisterRoutes(protected)
			requirementHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
		}
	}

	return &app{router: r, hub: hub, notifications: notificationService}
}
