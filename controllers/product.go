package controllers

import (
	"errors"
	"net/http"

	"frecha-backend/config"
	"frecha-backend/models"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateRouterInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" binding:"min=0"`
	Specifications string  `json:"specifications"`
}

type UpdateRouterInput struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	Specifications *string  `json:"specifications"`
	IsAvailable    *bool    `json:"isAvailable"`
}

type CreateDeviceInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" binding:"min=0"`
	Category       string  `json:"category"`
	Specifications string  `json:"specifications"`
	StockQuantity  int     `json:"stockQuantity" binding:"omitempty,min=0"`
}

// GetRouters lists routers currently in stock.
func GetRouters(c *gin.Context) {
	var routers []models.RouterProduct
	if err := config.DB.Where("is_available = ?", true).Find(&routers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve routers")
		return
	}
	c.JSON(http.StatusOK, routers)
}

// CreateRouter adds a router product (admin).
func CreateRouter(c *gin.Context) {
	var input CreateRouterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	router := models.RouterProduct{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Specifications: input.Specifications,
		IsAvailable:    true,
	}
	if err := config.DB.Create(&router).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create router")
		return
	}
	c.JSON(http.StatusCreated, router)
}

// UpdateRouter edits a router product (admin).
func UpdateRouter(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}

	var input UpdateRouterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var router models.RouterProduct
	if err := config.DB.First(&router, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Router not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		router.Name = *input.Name
	}
	if input.Description != nil {
		router.Description = *input.Description
	}
	if input.Price != nil {
		router.Price = *input.Price
	}
	if input.Specifications != nil {
		router.Specifications = *input.Specifications
	}
	if input.IsAvailable != nil {
		router.IsAvailable = *input.IsAvailable
	}

	if err := config.DB.Save(&router).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update router")
		return
	}
	c.JSON(http.StatusOK, router)
}

// GetDevices lists available electronics devices, optionally by category.
func GetDevices(c *gin.Context) {
	query := config.DB.Where("is_available = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var devices []models.ElectronicsDevice
	if err := query.Find(&devices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve devices")
		return
	}
	c.JSON(http.StatusOK, devices)
}

// CreateDevice adds an electronics device (admin).
func CreateDevice(c *gin.Context) {
	var input CreateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	device := models.ElectronicsDevice{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Specifications: input.Specifications,
		StockQuantity:  input.StockQuantity,
		IsAvailable:    true,
	}
	if device.Category == "" {
		device.Category = "General"
	}

	if err := config.DB.Create(&device).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create device")
		return
	}
	c.JSON(http.StatusCreated, device)
}
