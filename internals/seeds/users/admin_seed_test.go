package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iglesiamqv_backend/internals/constants"
	"iglesiamqv_backend/internals/features/users/user/model"
	users "iglesiamqv_backend/internals/seeds/users"
	"iglesiamqv_backend/internals/testutil"
)

func TestSeedAdminUser(t *testing.T) {
	store := testutil.OpenStore(t)

	users.SeedAdminUser(store)

	var admin model.UserModel
	require.NoError(t, store.DB.First(&admin, "username = ?", "admin").Error)
	assert.Equal(t, constants.RoleAdmin, admin.Role)
	assert.Equal(t, constants.MinisterioAdministracion, admin.Ministerio)
	assert.True(t, admin.Activo)
	assert.True(t, admin.ComparePassword("admin123"))

	// idempotente: una segunda corrida no duplica ni pisa la contraseña
	users.SeedAdminUser(store)
	var total int64
	require.NoError(t, store.DB.Model(&model.UserModel{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

// Si el admin fue desactivado, el seed lo reactiva sin tocar lo demás.
func TestSeedAdminReactiva(t *testing.T) {
	store := testutil.OpenStore(t)
	users.SeedAdminUser(store)

	var admin model.UserModel
	require.NoError(t, store.DB.First(&admin, "username = ?", "admin").Error)
	require.NoError(t, store.DB.Model(&admin).Update("activo", false).Error)

	users.SeedAdminUser(store)

	var releido model.UserModel
	require.NoError(t, store.DB.First(&releido, "username = ?", "admin").Error)
	assert.True(t, releido.Activo)
	assert.True(t, releido.ComparePassword("admin123"))
}
