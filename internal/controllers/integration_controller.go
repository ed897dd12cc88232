package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/middleware"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type IntegrationController struct {
	service services.IntegrationService
}

func NewIntegrationController(service services.IntegrationService) *IntegrationController {
	return &IntegrationController{service: service}
}

// CreateIntegration godoc
// @Summary Create OAuth2 client
// @Description Create a new OAuth2 client for a delivery integration
// @Tags OAuth2 Clients
// @Accept json
// @Produce json
// @Param client body object{name=string,domain=string,scopes=string} true "Client details"
// @Success 201 {object} map[string]interface{} "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError "Invalid request"
// @Failure 500 {object} models.APIError "Client creation failed"
// @Security BearerAuth
// @Router /api/v1/protected/integrations [post]
func (ic *IntegrationController) CreateIntegration(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Domain string `json:"domain"`
		Scopes string `json:"scopes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid integration payload",
			map[string]interface{}{"reason": err.Error()}))
		return
	}
	if req.Scopes == "" {
		req.Scopes = "deliveries"
	}

	client, secret, err := ic.service.CreateIntegration(req.Name, req.Domain, req.Scopes, c.GetUint(middleware.ContextStaffID))
	if err != nil {
		logrus.WithError(err).Error("Failed to create integration")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "client_creation_failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret, // Return plain secret only once
		"name":          client.Name,
		"domain":        client.Domain,
		"scopes":        client.Scopes,
	})
}

// ListIntegrations godoc
// @Summary List OAuth2 clients
// @Description Get all OAuth2 clients owned by the authenticated staff member
// @Tags OAuth2 Clients
// @Produce json
// @Success 200 {array} models.OAuthClient "List of clients"
// @Failure 500 {object} models.APIError "Failed to retrieve clients"
// @Security BearerAuth
// @Router /api/v1/protected/integrations [get]
func (ic *IntegrationController) ListIntegrations(c *gin.Context) {
	clients, err := ic.service.GetIntegrationsByStaffMember(c.GetUint(middleware.ContextStaffID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "failed_to_retrieve_clients"))
		return
	}

	c.JSON(http.StatusOK, clients)
}

// DeleteIntegration godoc
// @Summary Delete OAuth2 client
// @Description Delete an OAuth2 client owned by the authenticated staff member
// @Tags OAuth2 Clients
// @Param id path string true "Client ID"
// @Success 204 "Client deleted successfully"
// @Failure 404 {object} models.APIError "Client not found"
// @Failure 500 {object} models.APIError "Client deletion failed"
// @Security BearerAuth
// @Router /api/v1/protected/integrations/{id} [delete]
func (ic *IntegrationController) DeleteIntegration(c *gin.Context) {
	err := ic.service.DeleteIntegration(c.Param("id"), c.GetUint(middleware.ContextStaffID))
	if errors.Is(err, services.ErrIntegrationNotFound) {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "client_not_found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "client_deletion_failed"))
		return
	}

	c.Status(http.StatusNoContent)
}

// GetIntegration godoc
// @Summary Get OAuth2 client
// @Description Get one OAuth2 client owned by the authenticated staff member
// @Tags OAuth2 Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.OAuthClient
// @Failure 404 {object} models.APIError "Client not found"
// @Security BearerAuth
// @Router /api/v1/protected/integrations/{id} [get]
func (ic *IntegrationController) GetIntegration(c *gin.Context) {
	client, err := ic.service.GetIntegrationByID(c.Param("id"))
	if errors.Is(err, services.ErrIntegrationNotFound) || (err == nil && client.StaffMemberID != c.GetUint(middleware.ContextStaffID)) {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "client_not_found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "failed_to_retrieve_client"))
		return
	}

	c.JSON(http.StatusOK, client)
}
