package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewIntegrationService(db)

	member, err := service.EnsureStaffMember("dispatch@pizzeria.test", "Dispatch", models.RoleStaff)
	require.NoError(t, err)

	same, err := service.EnsureStaffMember("dispatch@pizzeria.test", "Dispatch", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, member.ID, same.ID)

	client, secret, err := service.CreateIntegration("Livreurs Express", "https://livreurs.test", "deliveries", member.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.NotEqual(t, secret, client.Secret)
	assert.True(t, client.VerifyPassword(secret))
	assert.False(t, client.VerifyPassword("wrong"))

	stored, err := service.GetIntegrationByID(client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Livreurs Express", stored.Name)
	assert.Equal(t, "1", stored.GetUserID())

	list, err := service.GetIntegrationsByStaffMember(member.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, service.DeleteIntegration(client.ID, member.ID+1), ErrIntegrationNotFound)
	require.NoError(t, service.DeleteIntegration(client.ID, member.ID))

	_, err = service.GetIntegrationByID(client.ID)
	assert.ErrorIs(t, err, ErrIntegrationNotFound)
}

func TestEnsureStaffMemberRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewIntegrationService(db).EnsureStaffMember("chef@pizzeria.test", "Chef", "owner")

	assert.Error(t, err)
}
