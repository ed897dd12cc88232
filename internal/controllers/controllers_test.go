package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/database"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSessionSecret = "test-session-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedCatalog(db))
	return db
}

// setupOrderRouter registers the HTML pages and the client API on a test engine
func setupOrderRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	tmpl, err := views.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	orders := NewOrderController(services.NewCatalogService(db), services.NewOrderService(db), NewSessionStore(testSessionSecret))
	customers := NewCustomerController(services.NewCustomerService(db))

	router.GET("/", orders.Index)
	router.POST("/confirmation", orders.Confirmation)
	router.POST("/commander", orders.Commander)
	router.GET("/commandes_en_attente", orders.PendingDeliveries)
	router.POST("/livrer/:order_id", orders.Deliver)
	router.GET("/api/client/:id", customers.GetCustomerByID)
	return router
}

func tremblayValues() url.Values {
	return url.Values{
		"last_name":  {"Tremblay"},
		"first_name": {"Luc"},
		"phone":      {"555-1234"},
		"address":    {"1 Main St"},
		"crust_id":   {"1"},
		"sauce_id":   {"2"},
		"topping1":   {"3"},
		"topping2":   {"5"},
		"topping3":   {""},
		"topping4":   {""},
	}
}

func postForm(router http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
