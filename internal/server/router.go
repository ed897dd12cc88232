package server

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-pizzeria-orders/docs" // swagger spec
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/auth"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/controllers"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/metrics"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/middleware"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Options carries what the router needs beyond the database handle
type Options struct {
	JWTSecret     string
	SessionSecret string
	Logger        *logrus.Logger
}

// NewRouter wires services and controllers on top of db and registers every route
func NewRouter(db *gorm.DB, opts Options) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), metrics.Instrument())
	router.SetHTMLTemplate(tmpl)

	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db)
	store := controllers.NewSessionStore(opts.SessionSecret)

	orderController := controllers.NewOrderController(catalogService, orderService, store)
	customerController := controllers.NewCustomerController(services.NewCustomerService(db))
	deliveryController := controllers.NewDeliveryController(orderService)
	integrationController := controllers.NewIntegrationController(services.NewIntegrationService(db))
	oauthService := auth.NewOAuthService(db, opts.JWTSecret)

	// Ordering pages
	router.GET("/", orderController.Index)
	router.POST("/confirmation", orderController.Confirmation)
	router.POST("/commander", orderController.Commander)
	router.GET("/commandes_en_attente", orderController.PendingDeliveries)
	router.POST("/livrer/:order_id", orderController.Deliver)
	router.GET("/api/client/:id", customerController.GetCustomerByID)

	// Operations
	router.GET("/health", healthCheckHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/oauth/token", oauthService.HandleToken)

	// Protected routes (requires an OAuth2 access token)
	protectedApi := router.Group("/api/v1/protected")
	protectedApi.Use(middleware.OAuth2Auth([]byte(opts.JWTSecret)))
	{
		deliveries := protectedApi.Group("/deliveries")
		deliveries.Use(middleware.RequireRole(models.RoleAdmin, models.RoleStaff))
		{
			deliveries.GET("", deliveryController.ListPending)
			deliveries.POST("/:order_id/deliver", deliveryController.MarkDelivered)
		}

		integrations := protectedApi.Group("/integrations")
		integrations.Use(middleware.RequireRole(models.RoleAdmin))
		{
			integrations.POST("", integrationController.CreateIntegration)
			integrations.GET("", integrationController.ListIntegrations)
			integrations.GET("/:id", integrationController.GetIntegration)
			integrations.DELETE("/:id", integrationController.DeleteIntegration)
		}
	}

	return router, nil
}

// WithCORS wraps the router so browser integrations on allowedOrigins can call the JSON API
func WithCORS(handler http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler(handler)
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-pizzeria-orders",
	})
}
