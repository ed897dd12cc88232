package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CustomerController exposes stored customers as JSON
type CustomerController struct {
	service services.CustomerService
}

// NewCustomerController creates a new instance of CustomerController
func NewCustomerController(service services.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

// GetCustomerByID godoc
// @Summary Get customer by ID
// @Description Get the stored name and phone number of a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/client/{id} [get]
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	client, err := cc.service.GetCustomerByID(id)
	if errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("client_id", id).Error("Failed to load client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}
	c.JSON(http.StatusOK, client)
}
