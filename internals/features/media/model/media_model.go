package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
)

var validate = validator.New()

// Archivo es el descriptor embebido del archivo físico.
type Archivo struct {
	Filename     string `gorm:"not null" json:"filename" validate:"required"`
	OriginalName string `gorm:"not null" json:"originalName" validate:"required"`
	Mimetype     string `gorm:"not null" json:"mimetype" validate:"required"`
	Size         int64  `gorm:"not null" json:"size" validate:"required"`
	Path         string `gorm:"not null" json:"path" validate:"required"`
}

// MediaModel representa la tabla medios. Los índices compuestos cubren las
// dos consultas dominantes: listado por ministerio y destacados.
type MediaModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Titulo      string               `gorm:"size:200;not null" json:"titulo" validate:"required,max=200"`
	Descripcion string               `gorm:"size:1000" json:"descripcion" validate:"max=1000"`
	Tipo        string               `gorm:"type:varchar(10);not null" json:"tipo"` // foto|video, derivado del MIME
	Archivo     Archivo              `gorm:"embedded;embeddedPrefix:archivo_" json:"archivo"`
	Ministerio  string               `gorm:"size:50;not null;index:idx_medios_ministerio_activo_creado,priority:1" json:"ministerio"`
	SubidoPorID uuid.UUID            `gorm:"type:uuid;not null" json:"-"`
	SubidoPor   *userModel.UserModel `gorm:"foreignKey:SubidoPorID" json:"subidoPor,omitempty"`
	Activo      bool                 `gorm:"not null;default:true;index:idx_medios_ministerio_activo_creado,priority:2;index:idx_medios_destacado_activo,priority:2" json:"activo"`
	FechaEvento time.Time            `json:"fechaEvento"`
	Orden       int                  `gorm:"not null;default:0" json:"orden"`
	Destacado   bool                 `gorm:"not null;default:false;index:idx_medios_destacado_activo,priority:1" json:"destacado"`
	CreatedAt   time.Time            `gorm:"autoCreateTime;index:idx_medios_ministerio_activo_creado,priority:3,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MediaModel) TableName() string {
	return "medios"
}

// TipoFromMime deriva el tipo del MIME del archivo; no es seteable aparte.
func TipoFromMime(mimetype string) string {
	if strings.HasPrefix(mimetype, "image/") {
		return "foto"
	}
	return "video"
}

func (m *MediaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.FechaEvento.IsZero() {
		m.FechaEvento = time.Now()
	}
	// tipo siempre consistente con el MIME
	m.Tipo = TipoFromMime(m.Archivo.Mimetype)
	return nil
}

func (m *MediaModel) Validate() error {
	m.Titulo = strings.TrimSpace(m.Titulo)
	m.Descripcion = strings.TrimSpace(m.Descripcion)

	if err := validate.Struct(m); err != nil {
		return err
	}
	if !constants.IsValidMinisterio(m.Ministerio) {
		return errors.New("Ministerio no válido.")
	}
	return nil
}
