package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentalhub/internal/backend"
	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/modules/notification"
	jwtsvc "rentalhub/internal/pkg/jwt"
	"rentalhub/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	api := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, cfg.Backend.LandlordCacheTTL)
	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TTL)

	var pool *notification.WorkerPool
	if cfg.Push.Enabled() {
		pool = notification.NewWorkerPool(cfg.Push.Workers, repository.NewPushSubscriptionRepository(db), &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		})
	} else {
		log.Println("web push disabled: VAPID keys not configured")
	}

	a := newApp(cfg, db, api, j, pool)
	cleaner := notification.NewCleaner(a.notifications, cfg.Cleanup.RetentionDays, cfg.Cleanup.Schedule)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if pool != nil {
		pool.Start(ctx)
	}
	if err := cleaner.Start(); err != nil {
		log.Fatalf("cleanup schedule %q: %v", cfg.Cleanup.Schedule, err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	a.hub.Close()
	cleaner.Stop()
	cancel()
	log.Println("server stopped")
}
