package dto

import (
	"time"

	"github.com/google/uuid"

	"iglesiamqv_backend/internals/features/media/model"
)

// SubidoPorResponse: proyección mínima del uploader (username + ministerio),
// igual que el populate original.
type SubidoPorResponse struct {
	Username   string `json:"username"`
	Ministerio string `json:"ministerio"`
}

type MediaResponse struct {
	ID          uuid.UUID          `json:"id"`
	Titulo      string             `json:"titulo"`
	Descripcion string             `json:"descripcion,omitempty"`
	Tipo        string             `json:"tipo"`
	Archivo     model.Archivo      `json:"archivo"`
	Ministerio  string             `json:"ministerio"`
	SubidoPor   *SubidoPorResponse `json:"subidoPor,omitempty"`
	FechaEvento time.Time          `json:"fechaEvento"`
	Orden       int                `json:"orden"`
	Destacado   bool               `json:"destacado"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// UpdateMediaRequest: actualización parcial de los campos editables.
type UpdateMediaRequest struct {
	Titulo      *string `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	FechaEvento *string `json:"fechaEvento"`
	Destacado   *bool   `json:"destacado"`
}

type StatsResponse struct {
	Ministerio      string `json:"ministerio"`
	TotalFotos      int64  `json:"totalFotos"`
	TotalVideos     int64  `json:"totalVideos"`
	TotalDestacados int64  `json:"totalDestacados"`
	Total           int64  `json:"total"`
}

func ToMediaResponse(m *model.MediaModel) MediaResponse {
	resp := MediaResponse{
		ID:          m.ID,
		Titulo:      m.Titulo,
		Descripcion: m.Descripcion,
		Tipo:        m.Tipo,
		Archivo:     m.Archivo,
		Ministerio:  m.Ministerio,
		FechaEvento: m.FechaEvento,
		Orden:       m.Orden,
		Destacado:   m.Destacado,
		CreatedAt:   m.CreatedAt,
	}
	if m.SubidoPor != nil {
		resp.SubidoPor = &SubidoPorResponse{
			Username:   m.SubidoPor.Username,
			Ministerio: m.SubidoPor.Ministerio,
		}
	}
	return resp
}

func ToMediaResponses(medios []model.MediaModel) []MediaResponse {
	out := make([]MediaResponse, 0, len(medios))
	for i := range medios {
		out = append(out, ToMediaResponse(&medios[i]))
	}
	return out
}

// ParseFecha acepta RFC3339 o fecha simple (input type=date del panel).
func ParseFecha(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
