// controllers/admin_order.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"frecha-backend/config"
	"frecha-backend/models"
	"frecha-backend/services"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateOrderStatusInput defines the expected JSON structure for the admin
// status endpoint
type UpdateOrderStatusInput struct {
	Status             models.OrderStatus        `json:"status" binding:"required"`
	AdminNotes         *string                   `json:"admin_notes"`
	TrackingNumber     *string                   `json:"tracking_number"`
	Notify             bool                      `json:"notify"`
	NotificationMethod models.NotificationMethod `json:"notification_method" binding:"omitempty,oneof=email sms both"`
	Message            string                    `json:"message"`
}

// NotifyCustomerInput defines the expected JSON structure for a standalone
// notification
type NotifyCustomerInput struct {
	Method  models.NotificationMethod `json:"method" binding:"required,oneof=email sms both"`
	Message string                    `json:"message"`
}

// TrackingUpdateInput defines the expected JSON structure for an admin
// tracking entry
type TrackingUpdateInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

func parseOrderID(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
		return 0, false
	}
	return uint(orderID), true
}

// UpdateOrderStatus applies a status transition and, when requested, sends
// a notification afterwards. The two results come back separately: a
// notify failure never rolls back or hides the status change.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := orderService.Transition(orderID, input.Status, services.TransitionInput{
		AdminNotes:     input.AdminNotes,
		TrackingNumber: input.TrackingNumber,
	})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	notificationSent := false
	if input.Notify {
		method := input.NotificationMethod
		if method == "" {
			method = models.NotifyEmail
		}
		notificationSent = orderService.Notify(order, method, input.Message)
	}

	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"notification_sent": notificationSent,
	})
}

// NotifyCustomer re-sends a status notification without touching the order
// status. Lets admins retry a failed send.
func NotifyCustomer(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input NotifyCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	sent := orderService.Notify(&order, input.Method, input.Message)

	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"notification_sent": sent,
	})
}

// AddTrackingUpdate appends an entry to the order's tracking journal,
// creating the tracking record on first use.
func AddTrackingUpdate(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input TrackingUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tracking, err := orderService.RecordTrackingUpdate(orderID, input.Status, input.Note)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// GetOrders lists all orders with optional status and created-date filters.
func GetOrders(c *gin.Context) {
	query := config.DB.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// SearchOrders does a substring search across customer name, email, phone
// and product details.
func SearchOrders(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	orders, err := orderService.Search(q)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Order was modified by someone else, please retry")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
