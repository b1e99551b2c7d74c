package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	helper "iglesiamqv_backend/internals/helpers"
)

var validate = validator.New()

// UserModel representa la tabla users.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username" validate:"required,min=3,max=50"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'ministerio'" json:"role" validate:"required,oneof=admin ministerio"`
	Ministerio   string    `gorm:"size:50;not null" json:"ministerio" validate:"required"`
	Activo       bool      `gorm:"not null;default:true" json:"activo"`
	UltimoAcceso time.Time `json:"ultimoAcceso"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// true mientras Password contiene texto plano pendiente de hashear
	rehash bool `gorm:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetPassword deja el texto plano pendiente; el hash ocurre exactamente una
// vez, en BeforeSave. Nunca se persiste el plano.
func (u *UserModel) SetPassword(plain string) error {
	if len(plain) < 6 {
		return errors.New("La contraseña debe tener al menos 6 caracteres.")
	}
	u.Password = plain
	u.rehash = true
	return nil
}

// ComparePassword compara contra el hash almacenado (tiempo constante).
func (u *UserModel) ComparePassword(plain string) bool {
	return helper.CheckPasswordHash(u.Password, plain) == nil
}

func (u *UserModel) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UltimoAcceso.IsZero() {
		u.UltimoAcceso = time.Now()
	}
	return nil
}

func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	if u.rehash {
		hash, err := helper.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hash
		u.rehash = false
	}
	return nil
}

// Validate normaliza y valida el registro antes de persistir.
func (u *UserModel) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = constants.RoleMinisterio
	}

	if err := validate.Struct(u); err != nil {
		return err
	}
	if !constants.IsValidMinisterioUsuario(u.Ministerio) {
		return errors.New("Ministerio no válido.")
	}
	return nil
}
