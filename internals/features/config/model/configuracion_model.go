package model

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tipos de valor soportados (variante etiquetada, no un slot sin tipo).
const (
	ValorString  = "string"
	ValorNumber  = "number"
	ValorBoolean = "boolean"
	ValorObject  = "object"
)

// ConfiguracionModel: clave/valor de configuración del sitio.
// El valor viaja como JSON junto a su etiqueta de tipo.
type ConfiguracionModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Clave       string         `gorm:"size:100;uniqueIndex;not null" json:"clave"`
	ValorTipo   string         `gorm:"type:varchar(10);not null" json:"valorTipo"`
	Valor       datatypes.JSON `gorm:"not null" json:"valor"`
	Descripcion string         `gorm:"size:500" json:"descripcion"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ConfiguracionModel) TableName() string {
	return "configuraciones"
}

func (m *ConfiguracionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SetValor serializa el valor y fija su etiqueta de tipo.
func (m *ConfiguracionModel) SetValor(v any) error {
	switch v.(type) {
	case string:
		m.ValorTipo = ValorString
	case float64, float32, int, int32, int64:
		m.ValorTipo = ValorNumber
	case bool:
		m.ValorTipo = ValorBoolean
	case nil:
		return errors.New("El valor es requerido.")
	default:
		m.ValorTipo = ValorObject
	}

	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	m.Valor = datatypes.JSON(raw)
	return nil
}

// ValorAny deserializa el valor según se guardó.
func (m *ConfiguracionModel) ValorAny() (any, error) {
	var v any
	if err := sonic.Unmarshal(m.Valor, &v); err != nil {
		return nil, err
	}
	return v, nil
}
