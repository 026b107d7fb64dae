package controllers

import (
	"net/http"

	"chickenmaster-api/models"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
)

// AdminController exposes dashboard authentication endpoints.
type AdminController struct {
	authService services.AuthService
}

// NewAdminController creates a new AdminController.
func NewAdminController(authService services.AuthService) *AdminController {
	return &AdminController{authService: authService}
}

// Login handles POST /api/admin/login.
func (ac *AdminController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	}

	resp, svcErr := ac.authService.Login(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    resp.User,
		"session": resp.Session,
	})
}

// CheckSession handles POST /api/admin/check-session.
func (ac *AdminController) CheckSession(c *gin.Context) {
	var req models.CheckSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "valid": false, "error": "Missing session data"})
		return
	}

	info, svcErr := ac.authService.CheckSession(c.Request.Context(), req.Token)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "valid": false, "error": svcErr.Message})
		return
	}

	out := gin.H{"success": true, "valid": info.Valid}
	if info.Valid {
		out["user"] = info.User
	} else {
		out["reason"] = info.Reason
	}
	c.JSON(http.StatusOK, out)
}

// GetUser handles GET /api/admin/user/:userId.
func (ac *AdminController) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User ID required"})
		return
	}

	user, svcErr := ac.authService.GetUser(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, user)
}
