package controllers

import (
	"frecha-backend/services"
)

var orderService *services.OrderService

// Init wires the shared services before the router starts.
func Init(orders *services.OrderService) {
	orderService = orders
}
