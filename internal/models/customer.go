package models

// Client is a person who placed at least one order.
// Clients are identified by their (LastName, FirstName) pair; Phone is stored but not used for matching.
type Client struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LastName  string `gorm:"not null;index:idx_clients_name" json:"last_name"`
	FirstName string `gorm:"not null;index:idx_clients_name" json:"first_name"`
	Phone     string `json:"phone"`
}

func (Client) TableName() string {
	return "clients"
}
