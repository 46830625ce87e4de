package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"frecha-backend/config"
	"frecha-backend/controllers"
	"frecha-backend/models"
	"frecha-backend/routes"
	"frecha-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.ServiceProvider{},
		&models.DataPlan{},
		&models.Bundle{},
		&models.RouterProduct{},
		&models.ElectronicsDevice{},
		&models.Order{},
		&models.OrderTracking{},
		&models.OrderTrackingUpdate{},
		&models.NotificationLog{},
	)

	seedAdmin()
}

func main() {
	notifier := services.NewTransportNotifier()
	orderService := services.NewOrderService(config.DB, notifier)
	controllers.Init(orderService)

	services.NewDigestService(orderService, notifier).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// seedAdmin creates the initial admin account from env on first boot.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check for admin account: %v", err)
		return
	}

	admin := models.User{
		Email:    email,
		Password: password, // hashed in BeforeCreate hook
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
