package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxToppings is the number of topping slots on the order form
const MaxToppings = 4

// OrderForm holds the fields posted by the order form.
// The same fields are posted to the preview and to the submission endpoints.
// Catalog ids stay raw strings so the preview can show unresolvable ones as not found.
type OrderForm struct {
	LastName  string `form:"last_name" binding:"required"`
	FirstName string `form:"first_name" binding:"required"`
	Phone     string `form:"phone" binding:"required"`
	Address   string `form:"address" binding:"required"`
	CrustID   string `form:"crust_id" binding:"required"`
	SauceID   string `form:"sauce_id" binding:"required"`
	Topping1  string `form:"topping1"`
	Topping2  string `form:"topping2"`
	Topping3  string `form:"topping3"`
	Topping4  string `form:"topping4"`
}

// ToppingSlots returns the four topping fields in submission order, blanks included
func (f OrderForm) ToppingSlots() []string {
	return []string{f.Topping1, f.Topping2, f.Topping3, f.Topping4}
}

// PizzaIDs returns the crust and sauce ids, both of which must be positive integers
func (f OrderForm) PizzaIDs() (crustID, sauceID uint, err error) {
	if crustID, err = ParseCatalogID(f.CrustID); err != nil {
		return 0, 0, fmt.Errorf("crust_id: %w", err)
	}
	if sauceID, err = ParseCatalogID(f.SauceID); err != nil {
		return 0, 0, fmt.Errorf("sauce_id: %w", err)
	}
	return crustID, sauceID, nil
}

// ToppingIDs returns the non-blank topping ids in submission order.
// Duplicates are kept. A slot that is not a positive integer is an error.
func (f OrderForm) ToppingIDs() ([]uint, error) {
	ids := make([]uint, 0, MaxToppings)
	for i, raw := range f.ToppingSlots() {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := ParseCatalogID(raw)
		if err != nil {
			return nil, fmt.Errorf("topping%d: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseCatalogID parses a crust, sauce or topping id posted by the form
func ParseCatalogID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid catalog id %q", raw)
	}
	return uint(id), nil
}
