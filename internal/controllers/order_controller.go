package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/metrics"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// OrderController serves the HTML ordering and delivery pages
type OrderController struct {
	catalog services.CatalogService
	orders  services.OrderService
	store   sessions.Store
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(catalog services.CatalogService, orders services.OrderService, store sessions.Store) *OrderController {
	return &OrderController{catalog: catalog, orders: orders, store: store}
}

// Index renders the order form with the crust, sauce and topping choices
func (oc *OrderController) Index(c *gin.Context) {
	catalog, err := oc.catalog.GetCatalog()
	if err != nil {
		logrus.WithError(err).Error("Failed to load catalog")
		c.String(http.StatusInternalServerError, "Impossible de charger le menu, veuillez réessayer plus tard.")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   "Commander",
		"Catalog": catalog,
		"Flashes": popFlashes(c, oc.store),
	})
}

// Confirmation renders a read-only summary of the submitted order
func (oc *OrderController) Confirmation(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Formulaire incomplet: %v", err)
		return
	}

	preview, err := oc.catalog.PreviewOrder(form)
	if err != nil {
		logrus.WithError(err).Error("Failed to build order preview")
		c.String(http.StatusInternalServerError, "Impossible d'afficher la confirmation, veuillez réessayer plus tard.")
		return
	}

	c.HTML(http.StatusOK, "confirmation.html", gin.H{
		"Title":   "Confirmation",
		"Preview": preview,
	})
}

// Commander persists the confirmed order then redirects to the order form
func (oc *OrderController) Commander(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Formulaire incomplet: %v", err)
		return
	}

	order, err := oc.orders.PlaceOrder(form)
	if err != nil {
		metrics.RecordOrderFailed()
		if errors.Is(err, services.ErrInvalidOrder) {
			c.String(http.StatusBadRequest, "Commande invalide: %v", err)
			return
		}
		logrus.WithError(err).Error("Failed to place order")
		c.String(http.StatusInternalServerError, "La commande n'a pas pu être enregistrée, aucune donnée n'a été conservée. Veuillez réessayer.")
		return
	}

	metrics.RecordOrderPlaced()
	addFlash(c, oc.store, FlashMessage{
		Type:    FlashSuccess,
		Message: fmt.Sprintf("Merci %s, votre commande #%d a été enregistrée.", form.FirstName, order.ID),
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// PendingDeliveries renders the queue of orders awaiting delivery
func (oc *OrderController) PendingDeliveries(c *gin.Context) {
	pending, err := oc.orders.ListPendingDeliveries()
	if err != nil {
		logrus.WithError(err).Error("Failed to list pending deliveries")
		c.String(http.StatusInternalServerError, "Impossible de charger les livraisons en attente, veuillez réessayer plus tard.")
		return
	}

	c.HTML(http.StatusOK, "pending.html", gin.H{
		"Title":   "Livraisons en attente",
		"Pending": pending,
		"Flashes": popFlashes(c, oc.store),
	})
}

// Deliver removes the pending marker of an order then redirects to the queue
func (oc *OrderController) Deliver(c *gin.Context) {
	orderID, err := parseID(c.Param("order_id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Numéro de commande invalide")
		return
	}

	removed, err := oc.orders.MarkDelivered(orderID)
	if err != nil {
		logrus.WithError(err).WithField("order_id", orderID).Error("Failed to mark order delivered")
		c.String(http.StatusInternalServerError, "La livraison n'a pas pu être confirmée, veuillez réessayer.")
		return
	}

	metrics.RecordDeliveries(removed)
	if removed > 0 {
		addFlash(c, oc.store, FlashMessage{Type: FlashSuccess, Message: fmt.Sprintf("Commande #%d livrée.", orderID)})
	}
	c.Redirect(http.StatusSeeOther, "/commandes_en_attente")
}

// parseID accepts positive decimal ids only
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return uint(id), nil
}
