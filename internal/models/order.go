package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is one checkout event tied to a client
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClientID        uint      `gorm:"not null;index" json:"client_id"`
	Client          Client    `gorm:"foreignKey:ClientID" json:"-"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	DeliveryAddress string    `gorm:"not null" json:"delivery_address"`
}

func (Order) TableName() string {
	return "orders"
}

// AfterCreate queues every new order for delivery.
// It runs on the transaction that inserted the order, so a rollback also discards the marker.
func (o *Order) AfterCreate(tx *gorm.DB) error {
	return tx.Omit(clause.Associations).Create(&PendingDelivery{OrderID: o.ID}).Error
}

// Pizza is the crust and sauce chosen for an order
type Pizza struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`
	CrustID uint  `gorm:"not null" json:"crust_id"`
	Crust   Crust `gorm:"foreignKey:CrustID" json:"-"`
	SauceID uint  `gorm:"not null" json:"sauce_id"`
	Sauce   Sauce `gorm:"foreignKey:SauceID" json:"-"`
}

func (Pizza) TableName() string {
	return "pizzas"
}

// PizzaTopping links a pizza to one of its toppings. The same topping may appear twice.
type PizzaTopping struct {
	PizzaID   uint    `gorm:"not null;index" json:"pizza_id"`
	Pizza     Pizza   `gorm:"foreignKey:PizzaID" json:"-"`
	ToppingID uint    `gorm:"not null" json:"topping_id"`
	Topping   Topping `gorm:"foreignKey:ToppingID" json:"-"`
}

func (PizzaTopping) TableName() string {
	return "pizza_toppings"
}

// PendingDelivery marks an order that has not been delivered yet
type PendingDelivery struct {
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (PendingDelivery) TableName() string {
	return "pending_deliveries"
}
