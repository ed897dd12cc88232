package models

import "time"

// LabelNotFound replaces a crust or sauce label that could not be resolved
const LabelNotFound = "not found"

// OrderPreview is the read-only summary shown before an order is committed
type OrderPreview struct {
	Form     OrderForm
	Crust    string
	Sauce    string
	Toppings []string
}

// PendingOrder is one row of the delivery queue
type PendingOrder struct {
	OrderID         uint      `json:"order_id"`
	LastName        string    `json:"last_name"`
	FirstName       string    `json:"first_name"`
	Phone           string    `json:"phone"`
	DeliveryAddress string    `json:"delivery_address"`
	Date            time.Time `json:"date"`
	Crust           string    `json:"crust"`
	Sauce           string    `json:"sauce"`
	Toppings        string    `json:"toppings"`
}
