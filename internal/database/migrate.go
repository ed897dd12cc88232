package database

import (
	"fmt"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table used by the service
func Migrate(db *gorm.DB) error {
	log.Info("Migrating database schema")
	err := db.AutoMigrate(
		&models.Crust{},
		&models.Sauce{},
		&models.Topping{},
		&models.Client{},
		&models.Order{},
		&models.Pizza{},
		&models.PizzaTopping{},
		&models.PendingDelivery{},
		&models.StaffMember{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// DefaultCrusts, DefaultSauces and DefaultToppings are inserted into an empty catalog
var (
	DefaultCrusts   = []string{"Mince", "Épaisse", "Farine complète", "Sans gluten"}
	DefaultSauces   = []string{"Tomate", "Crème", "Pesto", "BBQ"}
	DefaultToppings = []string{"Pepperoni", "Champignons", "Oignons", "Poivrons", "Olives", "Jambon", "Ananas", "Fromage supplémentaire"}
)

// SeedCatalog fills each catalog table that is still empty.
// Tables that already hold rows are left untouched.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, &models.Crust{}, crustRows(DefaultCrusts)); err != nil {
			return err
		}
		if err := seedTable(tx, &models.Sauce{}, sauceRows(DefaultSauces)); err != nil {
			return err
		}
		return seedTable(tx, &models.Topping{}, toppingRows(DefaultToppings))
	})
}

func seedTable(tx *gorm.DB, model interface{ TableName() string }, rows interface{}) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("count %s: %w", model.TableName(), err)
	}
	if count > 0 {
		log.WithField("table", model.TableName()).Info("Catalog table already seeded")
		return nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("seed %s: %w", model.TableName(), err)
	}
	log.WithField("table", model.TableName()).Info("Catalog table seeded")
	return nil
}

func crustRows(labels []string) *[]models.Crust {
	rows := make([]models.Crust, len(labels))
	for i, label := range labels {
		rows[i] = models.Crust{Label: label}
	}
	return &rows
}

func sauceRows(labels []string) *[]models.Sauce {
	rows := make([]models.Sauce, len(labels))
	for i, label := range labels {
		rows[i] = models.Sauce{Label: label}
	}
	return &rows
}

func toppingRows(labels []string) *[]models.Topping {
	rows := make([]models.Topping, len(labels))
	for i, label := range labels {
		rows[i] = models.Topping{Label: label}
	}
	return &rows
}
