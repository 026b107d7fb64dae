package controllers

import (
	"net/http"

	"chickenmaster-api/models"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
)

// OrderController exposes the order endpoints.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /api/orders.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	order, svcErr := oc.orderService.CreateOrder(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetOrder handles GET /api/orders/:orderId.
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order ID missing"})
		return
	}

	order, svcErr := oc.orderService.GetOrder(c.Request.Context(), orderID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/:orderId.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order ID missing"})
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	order, svcErr := oc.orderService.UpdateOrder(c.Request.Context(), orderID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetAllOrders handles GET /api/orders/admin/all.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, svcErr := oc.orderService.ListOrders(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, orders)
}
