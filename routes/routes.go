package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/auth"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/config"
	orderControllers "github.com/tienda-verde/storefront-api/controllers/order"
	"github.com/tienda-verde/storefront-api/events"
	"github.com/tienda-verde/storefront-api/notify"
	"gorm.io/gorm"
)

// Env is everything the handlers share. Events, Mailer and Auth.Google may
// be nil when the integration is not configured.
type Env struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions *auth.Manager
	Auth     *auth.Authenticator
	Carts    *cart.Store
	Feed     *orderControllers.Feed
	Events   events.Publisher
	Mailer   *notify.OrderMailer
}

// SetupRoutes is the single entry-point that wires up Store, Auth, and Admin route groups.
func SetupRoutes(r *gin.Engine, env *Env) {
	r.GET("/healthz", healthz(env))

	// 1️⃣ Storefront (public + guest token)
	SetupStoreRoutes(r, env)

	// 2️⃣ Sign-in, sign-out, guest tokens
	SetupAuthRoutes(r, env)

	// 3️⃣ Back-office (admin session or API key)
	SetupAdminRoutes(r, env)
}

func healthz(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := env.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"carts":          env.Carts.Len(),
			"admin_sessions": env.Sessions.ActiveSessions(),
			"feed_clients":   env.Feed.Clients(),
		})
	}
}
