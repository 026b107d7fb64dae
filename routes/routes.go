package routes

import (
	"net/http"

	"chickenmaster-api/controllers"
	"chickenmaster-api/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires every API route onto the engine. Paths match what the
// storefront and admin dashboard already call.
func Register(
	r *gin.Engine,
	oc *controllers.OrderController,
	pc *controllers.PaymentController,
	gc *controllers.PaydunyaController,
	ac *controllers.AdminController,
) {
	api := r.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ping"})
	})

	orders := api.Group("/orders")
	orders.POST("", oc.CreateOrder)
	// admin/all before :orderId so the static segment is not shadowed
	orders.GET("/admin/all", oc.GetAllOrders)
	orders.GET("/:orderId", oc.GetOrder)
	orders.PUT("/:orderId", oc.UpdateOrder)

	payments := api.Group("/payments")
	payments.POST("", pc.CreatePayment)
	payments.GET("/admin/all", pc.GetAllPayments)
	payments.GET("/by-order/:orderId", pc.GetPaymentByOrderID)
	payments.GET("/:paymentId", pc.GetPayment)
	payments.PUT("/:paymentId", pc.UpdatePayment)

	paydunya := api.Group("/paydunya")
	paydunya.POST("/initialize", gc.Initialize)
	paydunya.POST("/callback", gc.Callback)
	paydunya.GET("/status/:orderId", gc.StatusByOrderID)
	paydunya.GET("/verify/:token", gc.StatusByToken)

	admin := api.Group("/admin")
	admin.POST("/login", middleware.LoginRateLimit(), ac.Login)
	admin.POST("/check-session", ac.CheckSession)
	admin.GET("/user/:userId", ac.GetUser)
}
