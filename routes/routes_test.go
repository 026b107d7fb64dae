package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chickenmaster-api/controllers"
	"chickenmaster-api/repository"
	"chickenmaster-api/routes"
	"chickenmaster-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRouter assembles the whole API over file-backed repositories in a
// temp dir, the same wiring main performs minus Kafka.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	logger := zap.NewNop()

	orderRepo, err := repository.NewFileOrderRepository(dir, logger)
	require.NoError(t, err)
	paymentRepo, err := repository.NewFilePaymentRepository(dir, logger)
	require.NoError(t, err)
	adminRepo, err := repository.NewFileAdminRepository(dir, logger)
	require.NoError(t, err)

	orderService := services.NewOrderService(orderRepo, nil, logger)
	paymentService := services.NewPaymentService(paymentRepo, nil, logger)
	gatewayService := services.NewPaydunyaService(orderRepo, paymentRepo, nil, logger)
	authService := services.NewAuthService(adminRepo, "routes-test-secret", logger)

	r := gin.New()
	routes.Register(r,
		controllers.NewOrderController(orderService),
		controllers.NewPaymentController(paymentService),
		controllers.NewPaydunyaController(gatewayService),
		controllers.NewAdminController(authService),
	)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ping", body["message"])
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	// place the order
	w, order := do(t, r, http.MethodPost, "/api/orders", gin.H{
		"order_number":  "CM1",
		"customer_name": "Awa",
		"items":         []gin.H{{"product_name": "Poulet braisé", "quantity": 1, "price": 4500}},
		"total":         4500,
		"order_type":    "livraison",
	})
	require.Equal(t, http.StatusOK, w.Code)
	orderID := order["id"].(string)
	assert.Equal(t, "pending", order["status"])

	// open the payment
	w, payment := do(t, r, http.MethodPost, "/api/payments", gin.H{
		"order_id":       orderID,
		"amount":         4500,
		"payment_method": "wave",
		"customer_name":  "Awa",
	})
	require.Equal(t, http.StatusOK, w.Code)
	paymentID := payment["id"].(string)
	assert.Equal(t, "pending", payment["status"])

	// start the gateway session
	w, session := do(t, r, http.MethodPost, "/api/paydunya/initialize", gin.H{
		"order_id":       orderID,
		"payment_id":     paymentID,
		"total":          4500,
		"payment_method": "wave",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, session["success"])
	token := session["token"].(string)
	require.NotEmpty(t, token)

	// provider webhook: paid
	w, cb := do(t, r, http.MethodPost, "/api/paydunya/callback", gin.H{
		"status":      "completed",
		"token":       token,
		"custom_data": gin.H{"order_id": orderID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment processed successfully", cb["message"])

	// order is confirmed and the payment settled
	w, got := do(t, r, http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", got["status"])

	w, status := do(t, r, http.MethodGet, "/api/paydunya/status/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := status["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.NotNil(t, data["paid_at"])

	w, verify := do(t, r, http.MethodGet, "/api/paydunya/verify/"+token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, paymentID, verify["data"].(map[string]interface{})["payment_id"])

	// payment lookup by order
	w, byOrder := do(t, r, http.MethodGet, "/api/payments/by-order/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, paymentID, byOrder["id"])
}

func TestAdminListRoutesAreNotShadowed(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/api/orders/admin/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w, _ = do(t, r, http.MethodGet, "/api/payments/admin/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAdminLoginAndSessionOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := do(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "manager@chickenmaster.com",
		"password": "Manager2026!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "manager-001", user["id"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "password must never be serialized")

	token := resp["session"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	w, check := do(t, r, http.MethodPost, "/api/admin/check-session", gin.H{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, check["valid"])

	w, check = do(t, r, http.MethodPost, "/api/admin/check-session", gin.H{"token": "garbage"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, check["valid"])

	w, got := do(t, r, http.MethodGet, "/api/admin/user/manager-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "manager@chickenmaster.com", got["email"])
}

func TestAdminLoginRejection(t *testing.T) {
	r := newTestRouter(t)

	w, resp := do(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "manager@chickenmaster.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Email or password incorrect", resp["error"])
}

func TestCallbackUnknownOrderOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := do(t, r, http.MethodPost, "/api/paydunya/callback", gin.H{
		"status":      "completed",
		"token":       "token_x",
		"custom_data": gin.H{"order_id": "order-ghost"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", resp["error"])
}

func TestPaymentModelValidationOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := do(t, r, http.MethodPost, "/api/payments", gin.H{
		"order_id":       "order-1",
		"amount":         4500,
		"payment_method": "paypal",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestUpdatePaymentOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, payment := do(t, r, http.MethodPost, "/api/payments", gin.H{
		"order_id":       "order-1",
		"amount":         4500,
		"payment_method": "orange-money",
	})
	require.Equal(t, http.StatusOK, w.Code)
	paymentID := payment["id"].(string)

	w, updated := do(t, r, http.MethodPut, "/api/payments/"+paymentID, gin.H{"status": "processing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "processing", updated["status"])

	w, resp := do(t, r, http.MethodPut, "/api/payments/"+paymentID, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Illegal status transition processing -> pending", resp["error"])
}
