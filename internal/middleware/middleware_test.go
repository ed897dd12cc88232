package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"uid":   "3",
		"role":  role,
		"aud":   "dispatch_app",
		"scope": "deliveries",
		"iat":   time.Now().Add(-time.Minute).Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func setupProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", OAuth2Auth(testSecret), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"staff_id":  c.GetUint(ContextStaffID),
			"role":      c.GetString(ContextRole),
			"client_id": c.GetString(ContextClientID),
		})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOAuth2AuthAcceptsValidToken(t *testing.T) {
	router := setupProtectedRouter(models.RoleAdmin, models.RoleStaff)

	w := get(router, "Bearer "+signToken(t, jwt.SigningMethodHS512, validClaims(models.RoleStaff)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"staff_id":3,"role":"staff","client_id":"dispatch_app"}`, w.Body.String())
}

func TestOAuth2AuthRejections(t *testing.T) {
	router := setupProtectedRouter(models.RoleAdmin, models.RoleStaff)

	expired := validClaims(models.RoleStaff)
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noUID := validClaims(models.RoleStaff)
	delete(noUID, "uid")

	badRole := validClaims("courier")

	testCases := []struct {
		name          string
		authorization string
		expectedError string
	}{
		{name: "missing header", authorization: "", expectedError: "authorization_required"},
		{name: "wrong scheme", authorization: "Basic abc", expectedError: "invalid_request"},
		{name: "empty bearer", authorization: "Bearer ", expectedError: "invalid_token"},
		{name: "garbage token", authorization: "Bearer not.a.jwt", expectedError: "invalid_token"},
		{name: "expired token", authorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, expired), expectedError: "invalid_token"},
		{name: "missing uid", authorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, noUID), expectedError: "invalid_token"},
		{name: "unknown role", authorization: "Bearer " + signToken(t, jwt.SigningMethodHS256, badRole), expectedError: "invalid_token"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedError)
		})
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	router := setupProtectedRouter(models.RoleAdmin)

	w := get(router, "Bearer "+signToken(t, jwt.SigningMethodHS256, validClaims(models.RoleStaff)))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffUIDFormats(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected StaffUID
		wantErr  bool
	}{
		{name: "numeric string", payload: `"12"`, expected: 12},
		{name: "json number", payload: `12`, expected: 12},
		{name: "words", payload: `"twelve"`, wantErr: true},
		{name: "negative", payload: `-1`, wantErr: true},
		{name: "fraction", payload: `1.5`, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var uid StaffUID
			err := json.Unmarshal([]byte(tt.payload), &uid)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, uid)
		})
	}
}

func TestOAuth2AuthRejectsOtherAlgorithms(t *testing.T) {
	router := setupProtectedRouter(models.RoleAdmin, models.RoleStaff)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(models.RoleAdmin)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := get(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOAuth2AuthRequiresExpiry(t *testing.T) {
	router := setupProtectedRouter(models.RoleAdmin, models.RoleStaff)
	claims := validClaims(models.RoleStaff)
	delete(claims, "exp")

	w := get(router, "Bearer "+signToken(t, jwt.SigningMethodHS256, claims))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.String(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"path":"/missing"`)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"warning"`)
}
