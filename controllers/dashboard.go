package controllers

import (
	"net/http"

	"frecha-backend/config"
	"frecha-backend/models"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns order counts per status plus revenue from
// delivered orders.
func GetDashboardOverview(c *gin.Context) {
	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}

	var counts []statusCount
	if err := config.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").Scan(&counts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	byStatus := gin.H{}
	var total int64
	for _, sc := range counts {
		byStatus[string(sc.Status)] = sc.Count
		total += sc.Count
	}

	var revenue float64
	config.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusDelivered).
		Select("COALESCE(SUM(total_price), 0)").Scan(&revenue)

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":    total,
		"ordersByStatus": byStatus,
		"revenue":        revenue,
	})
}

// GetAPIStatus is a public health endpoint.
func GetAPIStatus(c *gin.Context) {
	authenticated := false
	if _, exists := c.Get("userId"); exists {
		authenticated = true
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "API is running",
		"authenticated": authenticated,
	})
}
