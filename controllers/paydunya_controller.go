package controllers

import (
	"net/http"

	"chickenmaster-api/models"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
)

// PaydunyaController exposes the mock gateway endpoints.
type PaydunyaController struct {
	gateway services.PaydunyaService
}

// NewPaydunyaController creates a new PaydunyaController.
func NewPaydunyaController(gateway services.PaydunyaService) *PaydunyaController {
	return &PaydunyaController{gateway: gateway}
}

// Initialize handles POST /api/paydunya/initialize.
func (gc *PaydunyaController) Initialize(c *gin.Context) {
	var req models.PaydunyaInitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	resp, svcErr := gc.gateway.Initialize(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Callback handles POST /api/paydunya/callback. Unauthenticated: the gateway
// is simulated and no real money moves.
func (gc *PaydunyaController) Callback(c *gin.Context) {
	var req models.PaydunyaCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid callback body"})
		return
	}

	message, svcErr := gc.gateway.Callback(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// StatusByOrderID handles GET /api/paydunya/status/:orderId.
func (gc *PaydunyaController) StatusByOrderID(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order ID missing"})
		return
	}

	data, svcErr := gc.gateway.StatusByOrderID(c.Request.Context(), orderID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// StatusByToken handles GET /api/paydunya/verify/:token.
func (gc *PaydunyaController) StatusByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Token missing"})
		return
	}

	data, svcErr := gc.gateway.StatusByToken(c.Request.Context(), token)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
