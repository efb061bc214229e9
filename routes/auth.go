package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/auth"
	"github.com/tienda-verde/storefront-api/middleware"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, env *Env) {
	authGroup := r.Group("/auth")
	{
		// Storefront visitors get a guest token for their cart
		authGroup.POST("/guest", auth.CreateGuestUser(env.Sessions))

		authGroup.POST("/admin/login", auth.AdminLoginHandler(env.Auth))
		authGroup.POST("/admin/google", auth.GoogleAdminLoginHandler(env.Auth))

		session := authGroup.Group("/admin")
		session.Use(middleware.RequireAdmin(env.Sessions, ""))
		{
			session.GET("/session", auth.SessionHandler())
			session.POST("/logout", auth.LogoutHandler(env.Auth))
		}
	}
}
