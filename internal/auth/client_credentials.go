package auth

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HandleToken handles the token endpoint for delivery integrations
// @Summary Token Endpoint
// @Description Obtain an access token with the client credentials grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: client_credentials"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.OAuth2Error
// @Failure 401 {object} models.OAuth2Error
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	if grantType := c.PostForm("grant_type"); grantType != string(oauth2.ClientCredentials) {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrUnsupportedGrantType,
			"only the client_credentials grant is supported"))
		return
	}

	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	if clientID == "" || clientSecret == "" {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidRequest,
			"client_id and client_secret are required"))
		return
	}

	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("Failed to load integration client")
		}
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, "unknown client"))
		return
	}

	if !client.VerifyPassword(clientSecret) {
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, "invalid client secret"))
		return
	}

	ti, err := o.server.Manager.GenerateAccessToken(c.Request.Context(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserID:       client.GetUserID(),
		Scope:        client.Scopes,
	})
	if err != nil {
		logrus.WithError(err).WithField("client_id", clientID).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
	})
}
