package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// StaffJWTAccessGenerate generates JWT access tokens carrying the staff member id (uid) and role
type StaffJWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	DB           *gorm.DB
}

// NewStaffJWTAccessGenerate creates a new JWT access token generator
func NewStaffJWTAccessGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *StaffJWTAccessGenerate {
	return &StaffJWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token generates a JWT access token; it is called by the OAuth2 manager
func (g *StaffJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	createdAt := data.TokenInfo.GetAccessCreateAt()
	claims := jwt.MapClaims{
		"aud": data.Client.GetID(),
		"iat": createdAt.Unix(),
		"exp": createdAt.Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
	}

	// client_credentials tokens act for the staff member owning the client
	userID := data.UserID
	if userID == "" {
		userID = data.Client.GetUserID()
	}
	if userID == "" {
		return "", "", fmt.Errorf("cannot generate token: client %s has no staff member", data.Client.GetID())
	}
	claims["uid"] = userID

	// the role is read at issue time so a demoted member cannot keep elevated tokens past expiry
	role, err := g.staffRole(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch staff role: %w", err)
	}
	claims["role"] = role

	if scope := data.TokenInfo.GetScope(); scope != "" {
		claims["scope"] = scope
	}

	access, err := jwt.NewWithClaims(g.SignedMethod, claims).SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	refresh := ""
	if isGenRefresh {
		refreshClaims := jwt.MapClaims{
			"id":  access,
			"exp": data.TokenInfo.GetRefreshCreateAt().Add(data.TokenInfo.GetRefreshExpiresIn()).Unix(),
		}
		refresh, err = jwt.NewWithClaims(g.SignedMethod, refreshClaims).SignedString(g.SignedKey)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}

func (g *StaffJWTAccessGenerate) staffRole(userIDStr string) (string, error) {
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid staff member id format: %w", err)
	}

	var member models.StaffMember
	if err := g.DB.First(&member, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("staff member with ID %d not found", userID)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if member.Role == "" {
		return models.RoleStaff, nil
	}
	return member.Role, nil
}
