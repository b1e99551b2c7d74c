// Package testutil arma el entorno de pruebas: base sqlite en memoria con el
// esquema migrado y usuarios listos para autenticarse.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"iglesiamqv_backend/internals/configs"
	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	configModel "iglesiamqv_backend/internals/features/config/model"
	mediaModel "iglesiamqv_backend/internals/features/media/model"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
	helper "iglesiamqv_backend/internals/helpers"
)

// OpenStore abre una base sqlite en memoria con el esquema migrado.
func OpenStore(t *testing.T) *database.Store {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abriendo sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// una sola conexión para que :memory: no se fragmente
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&mediaModel.MediaModel{},
		&configModel.ConfiguracionModel{},
	); err != nil {
		t.Fatalf("migrando esquema: %v", err)
	}

	return database.NewStore(db)
}

// CreateUser persiste un usuario con la contraseña dada y lo devuelve.
func CreateUser(t *testing.T, store *database.Store, username, password, role, ministerio string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Username:   username,
		Email:      username + "@iglesiamqv.com",
		Role:       role,
		Ministerio: ministerio,
		Activo:     true,
	}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := store.DB.Create(u).Error; err != nil {
		t.Fatalf("creando usuario %s: %v", username, err)
	}
	return u
}

// CreateAdmin crea el administrador estándar de pruebas.
func CreateAdmin(t *testing.T, store *database.Store) *userModel.UserModel {
	t.Helper()
	return CreateUser(t, store, "admin", "admin123", constants.RoleAdmin, constants.MinisterioAdministracion)
}

// TokenFor firma un JWT válido para el usuario.
func TokenFor(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	token, err := helper.CreateToken(u.ID.String(), helper.TokenTTL)
	if err != nil {
		t.Fatalf("firmando token: %v", err)
	}
	return token
}
