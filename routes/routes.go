package routes

import (
	"os"
	"strings"

	"frecha-backend/config"
	"frecha-backend/controllers"
	"frecha-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public catalog and status
	api := r.Group("/api")
	{
		api.GET("/status", utils.OptionalAuthMiddleware(), controllers.GetAPIStatus)
		api.GET("/providers", controllers.GetProviders)
		api.GET("/providers/:id/bundles", controllers.GetBundlesByProvider)
		api.GET("/plans", controllers.GetPlans)
		api.GET("/bundles", controllers.GetBundles)
		api.GET("/routers", controllers.GetRouters)
		api.GET("/devices", controllers.GetDevices)

		api.GET("/my-orders", utils.AuthMiddleware(), controllers.GetMyOrders)
	}

	// Orders: guest-capable creation, owner/admin reads, public tracking
	orders := r.Group("/orders")
	{
		orders.POST("", utils.OptionalAuthMiddleware(), controllers.CreateOrder)
		orders.GET("/:id", utils.AuthMiddleware(), controllers.GetOrder)
		orders.POST("/:id/tracking", controllers.RegisterTracking)
	}

	r.GET("/tracking/:token", controllers.GetTracking)

	// Admin surface
	admin := r.Group("/admin")
	admin.Use(utils.AuthMiddleware(), utils.AdminMiddleware())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/search", controllers.SearchOrders)
		admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		admin.POST("/orders/:id/notify", controllers.NotifyCustomer)
		admin.POST("/orders/:id/tracking", controllers.AddTrackingUpdate)

		admin.GET("/dashboard", controllers.GetDashboardOverview)

		admin.POST("/providers", controllers.CreateProvider)
		admin.PUT("/providers/:id", controllers.UpdateProvider)
		admin.POST("/plans", controllers.CreatePlan)
		admin.POST("/bundles", controllers.CreateBundle)
		admin.POST("/routers", controllers.CreateRouter)
		admin.PUT("/routers/:id", controllers.UpdateRouter)
		admin.POST("/devices", controllers.CreateDevice)
	}

	return r
}
