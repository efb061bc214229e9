package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/tienda-verde/storefront-api/controllers/cart"
	catalogControllers "github.com/tienda-verde/storefront-api/controllers/catalog"
	orderControllers "github.com/tienda-verde/storefront-api/controllers/order"
	siteControllers "github.com/tienda-verde/storefront-api/controllers/site"
	"github.com/tienda-verde/storefront-api/middleware"
)

// SetupStoreRoutes registers all “/store/*” endpoints. Cart and checkout
// need a guest token from POST /auth/guest.
func SetupStoreRoutes(r *gin.Engine, env *Env) {
	db := env.DB
	store := r.Group("/store")
	{
		// ──────────────── Catalog ────────────────
		store.GET("/catalog", catalogControllers.GetCatalog(db))
		store.GET("/products/:name", catalogControllers.GetProduct(db))

		// ──────────────── Site content ────────────────
		store.GET("/site", siteControllers.GetSiteInfo(db))
		store.GET("/payment-methods", siteControllers.GetActivePaymentMethods(db))
		store.GET("/faqs", siteControllers.GetActiveFAQs(db))
		store.POST("/leads", siteControllers.CreateLead(db))

		store.POST("/checkout/validate", orderControllers.ValidateStepHandler())
	}

	guest := store.Group("")
	guest.Use(middleware.ValidateToken(env.Sessions))
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := guest.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(env.Carts))
			cartGroup.POST("", cartControllers.AddCartItem(db, env.Carts))
			cartGroup.PUT("/:product_name", cartControllers.SetCartItemQuantity(env.Carts))
			cartGroup.DELETE("/:product_name", cartControllers.DeleteCartItem(env.Carts))
			cartGroup.DELETE("", cartControllers.ClearCart(env.Carts))
		}

		// ──────────────── Checkout ────────────────
		guest.POST("/checkout", orderControllers.PlaceOrderHandler(&orderControllers.Checkout{
			DB:            db,
			Carts:         env.Carts,
			Feed:          env.Feed,
			Events:        env.Events,
			Mailer:        env.Mailer,
			WhatsAppPhone: env.Config.WhatsAppPhone,
		}))
	}
}
