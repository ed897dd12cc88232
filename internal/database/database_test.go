package database

import (
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "postgres keyword DSN",
			config: DatabaseConfig{
				Driver: "postgres", Host: "db", Port: "5432", User: "pizzeria",
				Password: "secret", Name: "orders", SSLMode: "disable",
			},
			expected: "host=db user=pizzeria password=secret dbname=orders port=5432 sslmode=disable",
		},
		{
			name:     "sqlite path enables foreign keys",
			config:   DatabaseConfig{Driver: "sqlite", Path: "pizzeria.sqlite"},
			expected: "pizzeria.sqlite?_foreign_keys=on",
		},
		{
			name:     "sqlite path with existing query",
			config:   DatabaseConfig{Driver: "sqlite", Path: "file:test.db?cache=shared"},
			expected: "file:test.db?cache=shared&_foreign_keys=on",
		},
		{
			name:     "unknown driver",
			config:   DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestMigrateAndSeedCatalog(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "pizzeria.sqlite")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedCatalog(db))
	// seeding twice must not duplicate rows
	require.NoError(t, SeedCatalog(db))

	var crusts []models.Crust
	require.NoError(t, db.Order("id").Find(&crusts).Error)
	require.Len(t, crusts, len(DefaultCrusts))
	assert.Equal(t, DefaultCrusts[0], crusts[0].Label)

	var sauces, toppings int64
	require.NoError(t, db.Model(&models.Sauce{}).Count(&sauces).Error)
	require.NoError(t, db.Model(&models.Topping{}).Count(&toppings).Error)
	assert.Equal(t, int64(len(DefaultSauces)), sauces)
	assert.Equal(t, int64(len(DefaultToppings)), toppings)
}

func TestSeedCatalogKeepsExistingRows(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&models.Crust{Label: "Napolitaine"}).Error)

	require.NoError(t, SeedCatalog(db))

	var crusts []models.Crust
	require.NoError(t, db.Find(&crusts).Error)
	require.Len(t, crusts, 1)
	assert.Equal(t, "Napolitaine", crusts[0].Label)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	err = db.Omit("Client").Create(&models.Order{ClientID: 999, DeliveryAddress: "1 Main St"}).Error
	assert.Error(t, err)
}
