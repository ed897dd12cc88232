package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IntegrationService manages the OAuth2 clients used by delivery integrations
type IntegrationService interface {
	// CreateIntegration stores a new client and returns it with its plain secret, shown only once
	CreateIntegration(name, domain, scopes string, staffMemberID uint) (*models.OAuthClient, string, error)
	GetIntegrationsByStaffMember(staffMemberID uint) ([]models.OAuthClient, error)
	GetIntegrationByID(id string) (*models.OAuthClient, error)
	DeleteIntegration(id string, staffMemberID uint) error
	// EnsureStaffMember returns the staff member with this email, creating it with the given role if needed
	EnsureStaffMember(email, name, role string) (*models.StaffMember, error)
}

type integrationService struct {
	db *gorm.DB
}

func NewIntegrationService(db *gorm.DB) IntegrationService {
	return &integrationService{db: db}
}

func (s *integrationService) CreateIntegration(name, domain, scopes string, staffMemberID uint) (*models.OAuthClient, string, error) {
	secret := uuid.New().String()
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash integration secret: %w", err)
	}

	client := &models.OAuthClient{
		ID:            uuid.New().String(),
		Secret:        string(hashedSecret),
		Name:          name,
		Domain:        domain,
		Scopes:        scopes,
		StaffMemberID: staffMemberID,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, "", fmt.Errorf("create integration: %w", err)
	}
	return client, secret, nil
}

func (s *integrationService) GetIntegrationsByStaffMember(staffMemberID uint) ([]models.OAuthClient, error) {
	var clients []models.OAuthClient
	if err := s.db.Where("staff_member_id = ?", staffMemberID).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *integrationService) GetIntegrationByID(id string) (*models.OAuthClient, error) {
	var client models.OAuthClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (s *integrationService) DeleteIntegration(id string, staffMemberID uint) error {
	result := s.db.Where("id = ? AND staff_member_id = ?", id, staffMemberID).Delete(&models.OAuthClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIntegrationNotFound
	}
	return nil
}

func (s *integrationService) EnsureStaffMember(email, name, role string) (*models.StaffMember, error) {
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, fmt.Errorf("invalid role %q (allowed: %s, %s)", role, models.RoleAdmin, models.RoleStaff)
	}

	var member models.StaffMember
	err := s.db.Where("email = ?", email).First(&member).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member = models.StaffMember{Email: email, Name: name, Role: role}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("create staff member: %w", err)
	}
	return &member, nil
}
