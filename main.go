package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/auth"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/config"
	orderControllers "github.com/tienda-verde/storefront-api/controllers/order"
	"github.com/tienda-verde/storefront-api/database"
	"github.com/tienda-verde/storefront-api/events"
	"github.com/tienda-verde/storefront-api/notify"
	"github.com/tienda-verde/storefront-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Init DB (migrates every table)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	if err := auth.EnsureSuperAdmin(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.Fatalf("❌ Failed to seed super admin: %v", err)
	}

	sessions, err := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.GuestTTL)
	if err != nil {
		log.Fatalf("❌ Session manager: %v", err)
	}
	defer sessions.Close()

	authenticator := &auth.Authenticator{DB: db, Sessions: sessions, SuperAdminEmail: cfg.SuperAdminEmail}
	if cfg.FirebaseEnabled() {
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID)
		if err != nil {
			log.Fatalf("❌ Firebase init failed: %v", err)
		}
		authenticator.Google = verifier
		log.Println("✅ Google admin sign-in enabled")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitPublisher(events.RabbitMQConfig{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			log.Fatalf("❌ RabbitMQ: %v", err)
		}
		publisher = rabbit
	}
	defer publisher.Close()

	var mailer *notify.OrderMailer
	if cfg.SendGridAPIKey != "" && cfg.OrderNotifyTo != "" {
		mailer = notify.NewOrderMailer(notify.NewSendGridClient(cfg.SendGridAPIKey), cfg.OrderNotifyFrom, cfg.OrderNotifyTo)
		log.Printf("✅ Order e-mails go to %s", cfg.OrderNotifyTo)
	}

	carts := cart.NewStore()
	feed := orderControllers.NewFeed()
	defer feed.Close()

	// Sweep idle carts and expired sessions in the background
	go carts.RunJanitor(ctx, 10*time.Minute, cfg.GuestTTL)
	go sweepSessions(ctx, sessions, 10*time.Minute)

	// Gin setup
	r := gin.Default()

	// CORS settings
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, &routes.Env{
		DB:       db,
		Config:   cfg,
		Sessions: sessions,
		Auth:     authenticator,
		Carts:    carts,
		Feed:     feed,
		Events:   publisher,
		Mailer:   mailer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
}

// sweepSessions drops expired admin sessions every interval until ctx is done.
func sweepSessions(ctx context.Context, m *auth.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("🗑️ Removed %d expired admin sessions", n)
			}
		}
	}
}
