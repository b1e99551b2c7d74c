package dto

import (
	"time"

	"github.com/google/uuid"

	"iglesiamqv_backend/internals/features/config/model"
)

type UpsertConfiguracionRequest struct {
	Clave       string `json:"clave"`
	Valor       any    `json:"valor"`
	Descripcion string `json:"descripcion"`
}

type ConfiguracionResponse struct {
	ID          uuid.UUID `json:"id"`
	Clave       string    `json:"clave"`
	ValorTipo   string    `json:"valorTipo"`
	Valor       any       `json:"valor"`
	Descripcion string    `json:"descripcion,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToConfiguracionResponse(m *model.ConfiguracionModel) ConfiguracionResponse {
	valor, err := m.ValorAny()
	if err != nil {
		valor = nil
	}
	return ConfiguracionResponse{
		ID:          m.ID,
		Clave:       m.Clave,
		ValorTipo:   m.ValorTipo,
		Valor:       valor,
		Descripcion: m.Descripcion,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToConfiguracionResponses(items []model.ConfiguracionModel) []ConfiguracionResponse {
	out := make([]ConfiguracionResponse, 0, len(items))
	for i := range items {
		out = append(out, ToConfiguracionResponse(&items[i]))
	}
	return out
}
