package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"gorm.io/gorm"
)

// CustomerService exposes the clients who ordered
type CustomerService interface {
	// GetCustomerByID retrieves a client by its ID
	GetCustomerByID(id uint) (models.Client, error)
}

type customerService struct {
	db *gorm.DB
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(db *gorm.DB) CustomerService {
	return &customerService{db: db}
}

func (s *customerService) GetCustomerByID(id uint) (models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Client{}, ErrCustomerNotFound
		}
		return models.Client{}, fmt.Errorf("lookup client %d: %w", id, err)
	}
	return client, nil
}
