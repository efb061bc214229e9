package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/tienda-verde/storefront-api/controllers/admin"
	orderControllers "github.com/tienda-verde/storefront-api/controllers/order"
	productcontroller "github.com/tienda-verde/storefront-api/controllers/product"
	salesControllers "github.com/tienda-verde/storefront-api/controllers/sales"
	siteControllers "github.com/tienda-verde/storefront-api/controllers/site"
	stockControllers "github.com/tienda-verde/storefront-api/controllers/stock"
	"github.com/tienda-verde/storefront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires an admin
// session or the API key.
func SetupAdminRoutes(r *gin.Engine, env *Env) {
	db := env.DB
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(env.Sessions, env.Config.APIKey))
	{
		// ─────────── Admin Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.POST("/admins", adminController.CreateAdmin(db))

		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(db))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(db))
			adminMgmt.POST("/reject", adminController.RejectAdmin(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.GET("/:id", productcontroller.GetProductByID(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}
		adminGroup.POST("/products-excel/import", productcontroller.ImportProductsFromExcel(db))
		adminGroup.GET("/products-excel/export", productcontroller.ExportProductsToExcel(db))

		// ─────────── Classification ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}
		subCategoryAdmin := adminGroup.Group("/subcategories")
		{
			subCategoryAdmin.POST("", productcontroller.CreateSubCategory(db))
			subCategoryAdmin.GET("", productcontroller.GetAllSubCategories(db))
			subCategoryAdmin.PUT("/:id", productcontroller.UpdateSubCategory(db))
			subCategoryAdmin.DELETE("/:id", productcontroller.DeleteSubCategory(db))
		}

		// ─────────── Orders ───────────
		orders := adminGroup.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrdersHandler(db))
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, env.Events, env.Feed))
			orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}
		// websocket endpoint for real-time order updates
		adminGroup.GET("/feed/ws", env.Feed.OrderWebSocketHandler)

		// ─────────── Inventory ───────────
		stock := adminGroup.Group("/stock")
		{
			stock.POST("/movements", stockControllers.RecordMovementHandler(db))
			stock.GET("/movements", stockControllers.ListMovementsHandler(db))
			stock.GET("/balance/:product", stockControllers.GetBalanceHandler(db))
			stock.GET("/availability", stockControllers.AvailabilityHandler(db, env.Config.LowStockThreshold))
			stock.GET("/export", stockControllers.ExportMovementsToExcel(db))
		}

		// ─────────── Sales ───────────
		sales := adminGroup.Group("/sales")
		{
			sales.GET("", salesControllers.GetSalesHandler(db))
			sales.GET("/export", salesControllers.ExportSalesToExcel(db))
		}

		// ─────────── Site Content ───────────
		adminGroup.PUT("/settings/:name", siteControllers.UpsertSetting(db))
		adminGroup.POST("/social-links", siteControllers.CreateSocialLink(db))
		adminGroup.DELETE("/social-links/:id", siteControllers.DeleteSocialLink(db))
		adminGroup.GET("/payment-methods", siteControllers.GetAllPaymentMethods(db))
		adminGroup.POST("/payment-methods", siteControllers.CreatePaymentMethod(db))
		adminGroup.PUT("/payment-methods/:id", siteControllers.UpdatePaymentMethod(db))
		adminGroup.DELETE("/payment-methods/:id", siteControllers.DeletePaymentMethod(db))
		adminGroup.POST("/faqs", siteControllers.CreateFAQ(db))
		adminGroup.DELETE("/faqs/:id", siteControllers.DeleteFAQ(db))
		adminGroup.GET("/leads", siteControllers.GetLeads(db))
	}
}
