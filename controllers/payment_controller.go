package controllers

import (
	"net/http"

	"chickenmaster-api/models"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
)

// PaymentController exposes the payment endpoints.
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreatePayment handles POST /api/payments.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	payment, svcErr := pc.paymentService.CreatePayment(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetPayment handles GET /api/payments/:paymentId.
func (pc *PaymentController) GetPayment(c *gin.Context) {
	paymentID := c.Param("paymentId")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Payment ID missing"})
		return
	}

	payment, svcErr := pc.paymentService.GetPayment(c.Request.Context(), paymentID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// UpdatePayment handles PUT /api/payments/:paymentId.
func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	paymentID := c.Param("paymentId")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Payment ID missing"})
		return
	}

	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	payment, svcErr := pc.paymentService.UpdatePayment(c.Request.Context(), paymentID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetPaymentByOrderID handles GET /api/payments/by-order/:orderId.
func (pc *PaymentController) GetPaymentByOrderID(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order ID missing"})
		return
	}

	payment, svcErr := pc.paymentService.GetPaymentByOrderID(c.Request.Context(), orderID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetAllPayments handles GET /api/payments/admin/all.
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	payments, svcErr := pc.paymentService.ListPayments(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, payments)
}
