package dto

import (
	"time"

	"github.com/google/uuid"

	"iglesiamqv_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Ministerio string `json:"ministerio"`
	Role       string `json:"role"`
}

// UpdateUserRequest: contrato de actualización parcial — solo los campos
// presentes en el payload se modifican.
type UpdateUserRequest struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Ministerio *string `json:"ministerio"`
	Role       *string `json:"role"`
	Activo     *bool   `json:"activo"`
}

// UserResponse: datos públicos del usuario. Nunca incluye el password.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Ministerio   string    `json:"ministerio"`
	Activo       bool      `json:"activo"`
	UltimoAcceso time.Time `json:"ultimoAcceso"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		Ministerio:   u.Ministerio,
		Activo:       u.Activo,
		UltimoAcceso: u.UltimoAcceso,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToUserResponses(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}
