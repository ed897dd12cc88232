package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by OAuth2Auth
const (
	ContextStaffID  = "staffID"
	ContextRole     = "staffRole"
	ContextClientID = "clientID"
	ContextScopes   = "scopes"
)

// StaffClaims is the payload of access tokens issued to delivery integrations
type StaffClaims struct {
	jwt.RegisteredClaims
	UID   StaffUID `json:"uid"`
	Role  string   `json:"role"`
	Scope string   `json:"scope,omitempty"`
}

// StaffUID accepts the staff member id as a numeric string or a JSON number
type StaffUID uint

func (u *StaffUID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var id uint64
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("uid %q is not numeric", v)
		}
		id = parsed
	case float64:
		if v < 1 || v != float64(uint64(v)) {
			return fmt.Errorf("uid %v is not a positive integer", v)
		}
		id = uint64(v)
	case nil:
		id = 0
	default:
		return fmt.Errorf("uid has unsupported type %T", raw)
	}
	*u = StaffUID(id)
	return nil
}

var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	jwt.WithExpirationRequired(),
	jwt.WithIssuedAt(),
)

// OAuth2Auth validates the bearer JWT issued to delivery integrations
// and stores the staff member id, role, client id and scopes in the gin context
func OAuth2Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, _ := strings.Cut(header, " ")
		switch {
		case header == "":
			abortWithOAuth2Error(c, "authorization_required", "Missing Authorization header. A valid Bearer token is required.")
			return
		case scheme != "Bearer":
			abortWithOAuth2Error(c, "invalid_request", "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		case strings.TrimSpace(token) == "":
			abortWithOAuth2Error(c, "invalid_token", "Bearer token is empty")
			return
		}

		claims, err := parseStaffClaims(token, jwtSecret)
		if err != nil {
			abortWithOAuth2Error(c, "invalid_token", err.Error())
			return
		}

		c.Set(ContextStaffID, uint(claims.UID))
		c.Set(ContextRole, claims.Role)
		if len(claims.Audience) > 0 && claims.Audience[0] != "" {
			c.Set(ContextClientID, claims.Audience[0])
		}
		if claims.Scope != "" {
			c.Set(ContextScopes, claims.Scope)
		}
		c.Next()
	}
}

// abortWithOAuth2Error answers 401 in the RFC 6750 error format
func abortWithOAuth2Error(c *gin.Context, code, description string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewOAuth2Error(code, description))
}

// parseStaffClaims checks signature and time claims, then the staff id and role
func parseStaffClaims(token string, jwtSecret []byte) (*StaffClaims, error) {
	claims := &StaffClaims{}
	_, err := tokenParser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errors.New("token has expired")
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, errors.New("token not yet valid")
	case err != nil:
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if claims.UID == 0 {
		return nil, errors.New("token missing required 'uid' claim")
	}
	switch claims.Role {
	case models.RoleAdmin, models.RoleStaff:
	case "":
		return nil, errors.New("token missing required 'role' claim")
	default:
		return nil, fmt.Errorf("invalid role '%s'. Allowed roles: %s, %s", claims.Role, models.RoleAdmin, models.RoleStaff)
	}
	return claims, nil
}
