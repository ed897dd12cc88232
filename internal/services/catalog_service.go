package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"gorm.io/gorm"
)

// CatalogService reads the crust, sauce and topping options
type CatalogService interface {
	// GetCatalog retrieves every option, ordered by id
	GetCatalog() (models.Catalog, error)
	// PreviewOrder resolves the labels of a submitted form without persisting anything
	PreviewOrder(form models.OrderForm) (models.OrderPreview, error)
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) GetCatalog() (models.Catalog, error) {
	var catalog models.Catalog
	if err := s.db.Order("id").Find(&catalog.Crusts).Error; err != nil {
		return models.Catalog{}, fmt.Errorf("list crusts: %w", err)
	}
	if err := s.db.Order("id").Find(&catalog.Sauces).Error; err != nil {
		return models.Catalog{}, fmt.Errorf("list sauces: %w", err)
	}
	if err := s.db.Order("id").Find(&catalog.Toppings).Error; err != nil {
		return models.Catalog{}, fmt.Errorf("list toppings: %w", err)
	}
	return catalog, nil
}

func (s *catalogService) PreviewOrder(form models.OrderForm) (models.OrderPreview, error) {
	preview := models.OrderPreview{Form: form, Crust: models.LabelNotFound, Sauce: models.LabelNotFound}

	var crust models.Crust
	found, err := s.lookupRaw(&crust, form.CrustID)
	if err != nil {
		return models.OrderPreview{}, fmt.Errorf("lookup crust %q: %w", form.CrustID, err)
	}
	if found {
		preview.Crust = crust.Label
	}

	var sauce models.Sauce
	found, err = s.lookupRaw(&sauce, form.SauceID)
	if err != nil {
		return models.OrderPreview{}, fmt.Errorf("lookup sauce %q: %w", form.SauceID, err)
	}
	if found {
		preview.Sauce = sauce.Label
	}

	// unknown or malformed toppings are left out of the summary
	preview.Toppings = []string{}
	for _, raw := range form.ToppingSlots() {
		var topping models.Topping
		found, err := s.lookupRaw(&topping, raw)
		if err != nil {
			return models.OrderPreview{}, fmt.Errorf("lookup topping %q: %w", raw, err)
		}
		if found {
			preview.Toppings = append(preview.Toppings, topping.Label)
		}
	}
	return preview, nil
}

// lookupRaw treats a blank or malformed id as a row that does not exist
func (s *catalogService) lookupRaw(dest interface{}, raw string) (bool, error) {
	id, err := models.ParseCatalogID(raw)
	if err != nil {
		return false, nil
	}
	return s.lookup(dest, id)
}

// lookup loads dest by primary key and reports whether a row matched
func (s *catalogService) lookup(dest interface{}, id uint) (bool, error) {
	if err := s.db.Take(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
