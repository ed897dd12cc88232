package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/metrics"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/middleware"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DeliveryController exposes the delivery queue to authenticated integrations
type DeliveryController struct {
	orders services.OrderService
}

// NewDeliveryController creates a new instance of DeliveryController
func NewDeliveryController(orders services.OrderService) *DeliveryController {
	return &DeliveryController{orders: orders}
}

// ListPending godoc
// @Summary List pending deliveries
// @Description Orders still waiting for delivery, oldest first
// @Tags deliveries
// @Produce json
// @Success 200 {array} models.PendingOrder
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} map[string]string
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/deliveries [get]
func (dc *DeliveryController) ListPending(c *gin.Context) {
	pending, err := dc.orders.ListPendingDeliveries()
	if err != nil {
		logrus.WithError(err).Error("Failed to list pending deliveries")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve pending deliveries"))
		return
	}
	c.JSON(http.StatusOK, pending)
}

// MarkDelivered godoc
// @Summary Confirm a delivery
// @Description Remove an order from the delivery queue. Confirming twice is a no-op.
// @Tags deliveries
// @Produce json
// @Param order_id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} map[string]string
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/deliveries/{order_id}/deliver [post]
func (dc *DeliveryController) MarkDelivered(c *gin.Context) {
	orderID, err := parseID(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid order ID format"))
		return
	}

	removed, err := dc.orders.MarkDelivered(orderID)
	if err != nil {
		logrus.WithError(err).WithField("order_id", orderID).Error("Failed to mark order delivered")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to confirm delivery"))
		return
	}

	metrics.RecordDeliveries(removed)
	logrus.WithFields(logrus.Fields{
		"order_id":  orderID,
		"client_id": c.GetString(middleware.ContextClientID),
		"removed":   removed,
	}).Info("Delivery confirmed through API")

	c.JSON(http.StatusOK, gin.H{
		"order_id":  orderID,
		"delivered": removed > 0,
	})
}
