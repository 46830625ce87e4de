package controllers

import (
	"errors"
	"net/http"

	"frecha-backend/services"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
)

// GuestTrackingInput defines the expected JSON structure for guest
// tracking signup
type GuestTrackingInput struct {
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// RegisterTracking gives a guest a tracking token once they present the
// email the order was placed with. Wrong email answers 404, same as a
// missing order.
func RegisterTracking(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input GuestTrackingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tracking, err := orderService.RegisterGuestTracking(orderID, input.CustomerEmail)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": tracking.Token})
}

// GetTracking is the public status page behind a tracking token.
func GetTracking(c *gin.Context) {
	token := c.Param("token")

	tracking, order, err := orderService.LookupTracking(token)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tracking record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":       order.ID,
		"status":        order.Status,
		"statusDisplay": order.Status.Display(),
		"updates":       tracking.Updates,
	})
}
