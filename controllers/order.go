package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"frecha-backend/config"
	"frecha-backend/models"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	CustomerName   string             `json:"customerName" binding:"required"`
	CustomerEmail  string             `json:"customerEmail" binding:"required,email"`
	CustomerPhone  string             `json:"customerPhone" binding:"required"`
	ServiceType    models.ServiceType `json:"serviceType" binding:"required,oneof=data_plan bundle router electronics"`
	ProductDetails string             `json:"productDetails" binding:"required"`
	Quantity       int                `json:"quantity" binding:"omitempty,min=1"`
	TotalPrice     float64            `json:"totalPrice" binding:"omitempty,min=0"`
	Notes          string             `json:"notes"`
}

// CreateOrder accepts guest and authenticated checkouts. A valid token in
// the request associates the order with the account; without one the order
// is a guest order.
func CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	order := models.Order{
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		ServiceType:    input.ServiceType,
		ProductDetails: input.ProductDetails,
		Quantity:       input.Quantity,
		TotalPrice:     input.TotalPrice,
		Status:         models.StatusPending,
		Notes:          input.Notes,
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}

	if userID, exists := c.Get("userId"); exists {
		if parsed, err := uuid.Parse(userID.(string)); err == nil {
			order.UserID = &parsed
		}
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order to its owner or to an admin.
func GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(orderID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.IsAdmin(c) {
		userID, exists := c.Get("userId")
		if !exists || order.UserID == nil || order.UserID.String() != userID.(string) {
			// Hide existence of other people's orders
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders lists the authenticated customer's orders, newest first.
func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", userUUID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}
