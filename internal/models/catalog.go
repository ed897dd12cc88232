package models

// Crust is a crust option offered on the order form
type Crust struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"not null" json:"label"`
}

func (Crust) TableName() string {
	return "crusts"
}

// Sauce is a sauce option offered on the order form
type Sauce struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"not null" json:"label"`
}

func (Sauce) TableName() string {
	return "sauces"
}

// Topping is a topping option offered on the order form
type Topping struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"not null" json:"label"`
}

func (Topping) TableName() string {
	return "toppings"
}

// Catalog bundles every option needed to populate the order form
type Catalog struct {
	Crusts   []Crust   `json:"crusts"`
	Sauces   []Sauce   `json:"sauces"`
	Toppings []Topping `json:"toppings"`
}
