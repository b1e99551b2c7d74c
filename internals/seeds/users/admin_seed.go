package users

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/users/user/model"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
	adminEmail    = "admin@iglesiamqv.com"
)

// SeedAdminUser garantiza que exista el administrador inicial. Si ya existe
// solo reafirma que esté activo; nunca pisa una contraseña cambiada.
func SeedAdminUser(store *database.Store) {
	var existente model.UserModel
	err := store.DB.First(&existente, "username = ?", adminUsername).Error
	if err == nil {
		if !existente.Activo {
			if uerr := store.DB.Model(&existente).Update("activo", true).Error; uerr != nil {
				log.Printf("[ERROR] Reactivando admin: %v", uerr)
				return
			}
			log.Println("✅ Usuario admin reactivado")
		}
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] Buscando admin: %v", err)
		return
	}

	admin := model.UserModel{
		Username:   adminUsername,
		Email:      adminEmail,
		Role:       constants.RoleAdmin,
		Ministerio: constants.MinisterioAdministracion,
		Activo:     true,
	}
	if perr := admin.SetPassword(adminPassword); perr != nil {
		log.Printf("[ERROR] Contraseña del admin: %v", perr)
		return
	}
	if cerr := store.DB.Create(&admin).Error; cerr != nil {
		log.Printf("[ERROR] Creando admin: %v", cerr)
		return
	}
	log.Println("✅ Usuario admin creado (admin / admin123)")
}
