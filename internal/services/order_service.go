package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderService handles order submission and the delivery queue
type OrderService interface {
	// PlaceOrder persists the client, order, pizza and toppings of a form in one transaction
	PlaceOrder(form models.OrderForm) (models.Order, error)
	// ListPendingDeliveries returns the delivery queue, oldest order first
	ListPendingDeliveries() ([]models.PendingOrder, error)
	// MarkDelivered removes an order from the delivery queue and reports how many markers were removed
	MarkDelivered(orderID uint) (int64, error)
}

type orderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db, now: time.Now}
}

func (s *orderService) PlaceOrder(form models.OrderForm) (models.Order, error) {
	crustID, sauceID, err := form.PizzaIDs()
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	toppingIDs, err := form.ToppingIDs()
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	var order models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		clientID, err := findOrCreateClient(tx, form)
		if err != nil {
			return err
		}

		order = models.Order{
			ClientID:        clientID,
			Date:            s.now(),
			DeliveryAddress: form.Address,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		pizza := models.Pizza{OrderID: order.ID, CrustID: crustID, SauceID: sauceID}
		if err := tx.Omit(clause.Associations).Create(&pizza).Error; err != nil {
			return fmt.Errorf("insert pizza: %w", err)
		}

		if len(toppingIDs) == 0 {
			return nil
		}
		toppings := make([]models.PizzaTopping, len(toppingIDs))
		for i, id := range toppingIDs {
			toppings[i] = models.PizzaTopping{PizzaID: pizza.ID, ToppingID: id}
		}
		if err := tx.Omit(clause.Associations).Create(&toppings).Error; err != nil {
			return fmt.Errorf("insert pizza toppings: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"toppings":  len(toppingIDs),
	}).Info("Order placed")
	return order, nil
}

// findOrCreateClient matches clients on the (last name, first name) pair only
func findOrCreateClient(tx *gorm.DB, form models.OrderForm) (uint, error) {
	var client models.Client
	err := tx.Where("last_name = ? AND first_name = ?", form.LastName, form.FirstName).First(&client).Error
	if err == nil {
		return client.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("lookup client: %w", err)
	}

	client = models.Client{LastName: form.LastName, FirstName: form.FirstName, Phone: form.Phone}
	if err := tx.Create(&client).Error; err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return client.ID, nil
}

func (s *orderService) ListPendingDeliveries() ([]models.PendingOrder, error) {
	query := fmt.Sprintf(`
		SELECT o.id AS order_id, c.last_name, c.first_name, c.phone, o.delivery_address, o.date,
			cr.label AS crust, sa.label AS sauce, COALESCE(%s, '') AS toppings
		FROM pending_deliveries pd
		JOIN orders o ON o.id = pd.order_id
		JOIN clients c ON c.id = o.client_id
		JOIN pizzas p ON p.order_id = o.id
		JOIN crusts cr ON cr.id = p.crust_id
		JOIN sauces sa ON sa.id = p.sauce_id
		LEFT JOIN pizza_toppings pt ON pt.pizza_id = p.id
		LEFT JOIN toppings t ON t.id = pt.topping_id
		GROUP BY o.id, c.last_name, c.first_name, c.phone, o.delivery_address, o.date, cr.label, sa.label
		ORDER BY o.date ASC, o.id ASC`, toppingAggregate(s.db))

	pending := []models.PendingOrder{}
	if err := s.db.Raw(query).Scan(&pending).Error; err != nil {
		return nil, fmt.Errorf("list pending deliveries: %w", err)
	}
	return pending, nil
}

// toppingAggregate returns the dialect's comma-separated string aggregate over topping labels
func toppingAggregate(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "STRING_AGG(t.label, ', ')"
	}
	return "GROUP_CONCAT(t.label, ', ')"
}

func (s *orderService) MarkDelivered(orderID uint) (int64, error) {
	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("order_id = ?", orderID).Delete(&models.PendingDelivery{})
		if result.Error != nil {
			return fmt.Errorf("delete pending delivery %d: %w", orderID, result.Error)
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"removed":  removed,
	}).Info("Delivery confirmed")
	return removed, nil
}
