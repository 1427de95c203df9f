package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/gigboard-dev/gigboard/db"
	"github.com/gigboard-dev/gigboard/internal/auth"
	"github.com/gigboard-dev/gigboard/internal/config"
	"github.com/gigboard-dev/gigboard/internal/handlers"
	"github.com/gigboard-dev/gigboard/internal/middleware"
	"github.com/gigboard-dev/gigboard/internal/notify"
	"github.com/gigboard-dev/gigboard/internal/payments"
	"github.com/gigboard-dev/gigboard/internal/repositories"
	"github.com/gigboard-dev/gigboard/internal/router"
	"github.com/gigboard-dev/gigboard/internal/services"
	"github.com/gigboard-dev/gigboard/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var sessions session.Store

	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)

		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		defer redisStore.Close()
		sessions = redisStore
		log.Printf("Using Redis session store at %s", cfg.RedisAddr)
	} else {
		memoryStore := session.NewMemoryStore(cfg.SessionTTL)
		defer memoryStore.Close()
		sessions = memoryStore
		log.Println("Using in-memory session store")
	}

	var gateway payments.Gateway

	if cfg.PaymentBypassEnabled {
		log.Println("Payment bypass enabled, gigs will be marked paid at creation")
	} else {
		gateway = payments.NewStripeGateway(cfg.StripeSecretKey)
	}

	users := repositories.NewUserRepository(db.DB)
	gigs := repositories.NewGigRepository(db.DB)
	applications := repositories.NewApplicationRepository(db.DB)
	notifications := repositories.NewNotificationRepository(db.DB)

	hub := notify.NewHub()

	authService := services.NewAuthService(users)
	gigService := services.NewGigService(gigs, users, applications, notifications, gateway, hub, cfg.PaymentBypassEnabled)

	limiter := middleware.NewRateLimiter(10, 20)
	limiter.StartCleanup(10 * time.Minute)

	r := router.NewRouter(router.Deps{
		Auth:     handlers.NewAuthHandler(authService, gigService, sessions, int(cfg.SessionTTL.Seconds()), cfg.StripePublishableKey),
		Gigs:     handlers.NewGigHandler(gigService),
		WS:       handlers.NewWSHandler(hub),
		Sessions: sessions,
		Users:    users,
		Limiter:  limiter,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
