package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToppingIDs(t *testing.T) {
	testCases := []struct {
		name     string
		form     OrderForm
		expected []uint
		wantErr  bool
	}{
		{
			name:     "no toppings",
			form:     OrderForm{},
			expected: []uint{},
		},
		{
			name:     "blank slots are skipped",
			form:     OrderForm{Topping1: "3", Topping2: "", Topping3: " ", Topping4: "5"},
			expected: []uint{3, 5},
		},
		{
			name:     "duplicates are kept in order",
			form:     OrderForm{Topping1: "4", Topping2: "4", Topping3: "1"},
			expected: []uint{4, 4, 1},
		},
		{
			name:    "non numeric slot",
			form:    OrderForm{Topping2: "olives"},
			wantErr: true,
		},
		{
			name:    "zero is not an id",
			form:    OrderForm{Topping4: "0"},
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := tt.form.ToppingIDs()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestPizzaIDs(t *testing.T) {
	crustID, sauceID, err := OrderForm{CrustID: "1", SauceID: " 2 "}.PizzaIDs()
	require.NoError(t, err)
	assert.Equal(t, uint(1), crustID)
	assert.Equal(t, uint(2), sauceID)

	_, _, err = OrderForm{CrustID: "abc", SauceID: "2"}.PizzaIDs()
	assert.ErrorContains(t, err, "crust_id")

	_, _, err = OrderForm{CrustID: "1", SauceID: "0"}.PizzaIDs()
	assert.ErrorContains(t, err, "sauce_id")
}

func TestOAuthClientInfo(t *testing.T) {
	client := &OAuthClient{ID: "courier", Domain: "https://courier.example"}
	assert.Equal(t, "", client.GetUserID())
	assert.False(t, client.IsPublic())

	client.StaffMemberID = 7
	assert.Equal(t, "7", client.GetUserID())
}
