package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/middleware"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// asStaff stands in for OAuth2Auth in controller tests
func asStaff(staffID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextStaffID, staffID)
		c.Set(middleware.ContextRole, models.RoleAdmin)
		c.Set(middleware.ContextClientID, "test-client")
		c.Next()
	}
}

func setupAPIRouter(db *gorm.DB, staffID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	deliveries := NewDeliveryController(services.NewOrderService(db))
	integrations := NewIntegrationController(services.NewIntegrationService(db))

	api := router.Group("/api/v1/protected", asStaff(staffID))
	api.GET("/deliveries", deliveries.ListPending)
	api.POST("/deliveries/:order_id/deliver", deliveries.MarkDelivered)
	api.POST("/integrations", integrations.CreateIntegration)
	api.GET("/integrations", integrations.ListIntegrations)
	api.GET("/integrations/:id", integrations.GetIntegration)
	api.DELETE("/integrations/:id", integrations.DeleteIntegration)
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDeliveryAPI(t *testing.T) {
	db := setupTestDB(t)
	order, err := services.NewOrderService(db).PlaceOrder(models.OrderForm{
		LastName: "Tremblay", FirstName: "Luc", Phone: "555-1234", Address: "1 Main St",
		CrustID: "1", SauceID: "2", Topping1: "3",
	})
	require.NoError(t, err)
	router := setupAPIRouter(db, 1)

	w := doJSON(router, http.MethodGet, "/api/v1/protected/deliveries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.PendingOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].OrderID)
	assert.Equal(t, "1 Main St", pending[0].DeliveryAddress)

	path := fmt.Sprintf("/api/v1/protected/deliveries/%d/deliver", order.ID)
	w = doJSON(router, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"order_id": %d, "delivered": true}`, order.ID), w.Body.String())

	w = doJSON(router, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"order_id": %d, "delivered": false}`, order.ID), w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/v1/protected/deliveries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/protected/deliveries/abc/deliver", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegrationAPI(t *testing.T) {
	db := setupTestDB(t)
	member, err := services.NewIntegrationService(db).EnsureStaffMember("admin@pizzeria.test", "Admin", models.RoleAdmin)
	require.NoError(t, err)
	router := setupAPIRouter(db, member.ID)

	w := doJSON(router, http.MethodPost, "/api/v1/protected/integrations", `{"domain": "https://courier.example"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/protected/integrations", `{"name": "Courier", "domain": "https://courier.example"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	clientID := created["client_id"].(string)
	assert.NotEmpty(t, created["client_secret"])
	assert.Equal(t, "deliveries", created["scopes"])

	w = doJSON(router, http.MethodGet, "/api/v1/protected/integrations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), clientID)
	assert.NotContains(t, w.Body.String(), "secret")

	w = doJSON(router, http.MethodGet, "/api/v1/protected/integrations/"+clientID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Courier")

	// another staff member cannot see or delete it
	other := setupAPIRouter(db, member.ID+1)
	assert.Equal(t, http.StatusNotFound, doJSON(other, http.MethodGet, "/api/v1/protected/integrations/"+clientID, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(other, http.MethodDelete, "/api/v1/protected/integrations/"+clientID, "").Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/protected/integrations/"+clientID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/protected/integrations/"+clientID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
